package forecast_fx

import (
	"go.uber.org/fx"

	"vanplan/internal/services"
)

var Module = fx.Provide(ProvideForecastService)

func ProvideForecastService() services.ForecastServiceInterface {
	return services.NewOpenMeteoClient()
}
