// @title Lexile Evaluation API
// @version 1.0
// @description Backend for the Lexile reading evaluation app: AI-generated stories with comprehension questions, per-skill scoring and Lexile level tracking.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"lexile_eval_backend/internal/app"
	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
