package main

import (
	"flag"
	"log/slog"
	"os"

	"yaportal/internal/config"
	"yaportal/internal/db"
	"yaportal/internal/logging"
	"yaportal/internal/news"
	"yaportal/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	seed := flag.Bool("seed", false, "create sample news before serving")
	flag.Parse()

	cfg, err := config.Load("8000")
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

	if *seed {
		if err := db.SeedNews(conn, news.NewsCountOnHomePage+1); err != nil {
			logger.Error("failed to seed news", "error", err)
			os.Exit(1)
		}
	}

	r, err := router.NewsEngine(router.Options{
		DB:            conn,
		SessionSecret: cfg.SessionSecret,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	logger.Info("YaNews server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
