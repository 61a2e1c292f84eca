package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/ahmadnk31/fixwise/internal/config"
	"github.com/ahmadnk31/fixwise/internal/integrations/mailer"
	"github.com/ahmadnk31/fixwise/internal/integrations/notifier"
	"github.com/ahmadnk31/fixwise/pkg/logger"
)

// asynqLogger адаптер printf логгера к интерфейсу логгера asynq
type asynqLogger struct {
	log *logger.Logger
}

func (a asynqLogger) Debug(args ...interface{}) { a.log.Debug("%s", fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...interface{})  { a.log.Info("%s", fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...interface{})  { a.log.Warn("%s", fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...interface{}) { a.log.Error("%s", fmt.Sprint(args...)) }
func (a asynqLogger) Fatal(args ...interface{}) { a.log.Fatal("%s", fmt.Sprint(args...)) }

func main() {
	_ = godotenv.Load()

	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting FixWise notification worker (queue=%s, concurrency=%d)...",
		cfg.Notifications.Queue, cfg.Notifications.Concurrency)

	if cfg.Mailer.APIKey == "" {
		log.Fatal("mailer.api_key is not set (MAILER_API_KEY)")
	}

	mailClient := mailer.NewClient(
		cfg.Mailer.BaseURL,
		cfg.Mailer.APIKey,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.QueueDB,
		},
		asynq.Config{
			Concurrency:     cfg.Notifications.Concurrency,
			Queues:          map[string]int{cfg.Notifications.Queue: 1},
			ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
			Logger:          asynqLogger{log: log},
		},
	)

	mux := asynq.NewServeMux()
	notifier.NewHandler(mailClient, cfg.Mailer.From, log).Register(mux)

	if err := srv.Start(mux); err != nil {
		log.Fatal("Failed to start worker: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")
	srv.Shutdown()
	log.Info("Worker stopped gracefully")
}
