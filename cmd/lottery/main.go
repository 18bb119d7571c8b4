package main

import (
	"context"
	"log"
	"os"

	"lottodesk/internal/config"
	"lottodesk/internal/logger"
	"lottodesk/internal/pkg/cwl"

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

	client := cwl.New(cwl.WithBaseURL(cfg.CwlAPIURL), cwl.WithLogger(l))
	ctx := context.Background()

	l.Info("fetching the 30 most recent draws")
	recent := client.FetchRecent(ctx, 30)
	cwl.PrintDraws(os.Stdout, recent)

	l.Info("fetching draws for January 2024")
	january := client.FetchRange(ctx, "2024-01-01", "2024-01-31")
	cwl.PrintDraws(os.Stdout, january)

	if err := cwl.SaveJSON(cfg.LotteryDumpPath, recent); err != nil {
		l.Fatal("failed to save draws", zap.String("path", cfg.LotteryDumpPath), zap.Error(err))
	}
	l.Info("draws saved", zap.String("path", cfg.LotteryDumpPath), zap.Int("count", len(recent)))
}
