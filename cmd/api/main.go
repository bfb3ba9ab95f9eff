package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/config"
	"beetlevault-backend/pkg/logger"
)

func main() {
	// .env is for local development; production uses real environment
	// variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}

	logger.Init(cfg.App.Environment)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("environment", cfg.App.Environment).Msg("🌍 Starting BeetleVault API")

	Serve(cfg)
}
