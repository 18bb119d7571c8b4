package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lottodesk/internal/config"
	"lottodesk/internal/logger"
	"lottodesk/internal/pkg/cwl"
	"lottodesk/internal/tasks"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		l.Fatal("failed to parse Redis URL", zap.Error(err))
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
	syncDrawsTask, err := tasks.NewSyncDrawsTask(nil, nil)
	if err != nil {
		l.Fatal("failed to create sync draws task", zap.Error(err))
	}

	entryID, err := scheduler.Register(tasks.SyncDrawsSchedule, syncDrawsTask, asynq.Queue("default"))
	if err != nil {
		l.Fatal("failed to register periodic task", zap.Error(err))
	}
	l.Info("registered periodic task", zap.String("type", syncDrawsTask.Type()), zap.String("entry_id", entryID))

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 1,
			},
			Concurrency: 1,
		},
	)

	cwlClient := cwl.New(cwl.WithBaseURL(cfg.CwlAPIURL), cwl.WithLogger(l))
	taskProcessor := tasks.NewTaskProcessor(cfg, cwlClient, l)

	mux := asynq.NewServeMux()
	mux.HandleFunc(
		tasks.TypeTaskSyncDraws,
		taskProcessor.HandleSyncDrawsTask,
	)

	go func() {
		l.Info("starting asynq scheduler")
		if err := scheduler.Run(); err != nil {
			l.Fatal("could not run asynq scheduler", zap.Error(err))
		}
	}()

	go func() {
		l.Info("starting asynq worker server")
		if err := srv.Run(mux); err != nil {
			l.Fatal("could not run asynq worker server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	l.Info("shutdown signal received, shutting down gracefully")

	scheduler.Shutdown()
	l.Info("asynq scheduler shut down")

	srv.Shutdown()
	l.Info("asynq worker server shut down")
}
