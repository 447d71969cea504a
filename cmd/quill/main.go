package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/quill-dev/quill/db"
	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/logger"
	"github.com/quill-dev/quill/internal/router"
	"github.com/quill-dev/quill/internal/session"
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, relying on process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.ConnectDatabase(cfg.DatabaseDSN)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.MigrateDatabase(conn); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	sessions := session.NewManager(conn, cfg.JWTSecret, cfg.IsProduction(), cfg.CookieDomain)

	r := router.New(conn, sessions, cfg)

	log.Info().Str("port", cfg.Port).Msg("Starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
