package main

import (
	"log"

	"lottodesk/internal/config"
	"lottodesk/internal/logger"
	"lottodesk/internal/pkg/cwl"
	"lottodesk/internal/routes"
	"lottodesk/internal/store"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	demoStore := store.New(store.Options{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseURL})
	cwlClient := cwl.New(cwl.WithBaseURL(cfg.CwlAPIURL), cwl.WithLogger(l))

	router := routes.SetupRouter(demoStore, cwlClient, l)

	l.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := router.Run(cfg.HTTPAddr); err != nil {
		l.Fatal("failed to start server", zap.Error(err))
	}
}
