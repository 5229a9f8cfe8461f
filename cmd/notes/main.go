package main

import (
	"log/slog"
	"os"

	"yaportal/internal/config"
	"yaportal/internal/db"
	"yaportal/internal/logging"
	"yaportal/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("8001")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	r := router.NotesEngine(router.Options{
		DB:            conn,
		SessionSecret: cfg.SessionSecret,
		Logger:        logger,
	})

	logger.Info("YaNote server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
