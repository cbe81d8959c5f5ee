package controllers_fx

import (
	"go.uber.org/fx"

	"vanplan/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAssistantController),
	fx.Provide(controllers.NewMapController),
	fx.Provide(controllers.NewInfoController))
