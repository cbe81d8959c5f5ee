package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"vanplan/cmd/fx/assistant_fx"
	"vanplan/cmd/fx/controllers_fx"
	"vanplan/cmd/fx/forecast_fx"
	"vanplan/cmd/fx/memcache_fx"
	"vanplan/cmd/fx/planner_fx"
	"vanplan/internal/api/controllers"
	"vanplan/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	app := fx.New(
		planner_fx.Module,
		forecast_fx.Module,
		memcache_fx.Module,
		assistant_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	assistantController *controllers.AssistantController,
	mapController *controllers.MapController,
	infoController *controllers.InfoController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, assistantController, mapController, infoController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	assistantController *controllers.AssistantController,
	mapController *controllers.MapController,
	infoController *controllers.InfoController) {

	api := r.Group("/api/v1")

	assistantGroup := api.Group("/assistant")
	assistantGroup.POST("/session", assistantController.StartSessionHandler)
	assistantGroup.POST("/prompt", assistantController.SubmitPromptHandler)
	assistantGroup.GET("/history/:session_id", assistantController.HistoryHandler)
	assistantGroup.DELETE("/history/:session_id", assistantController.ClearHistoryHandler)

	mapGroup := api.Group("/map")
	mapGroup.GET("/features/:session_id", mapController.FeaturesHandler)

	infoGroup := api.Group("/info")
	infoGroup.GET("/:topic", infoController.TopicHandler)
}
