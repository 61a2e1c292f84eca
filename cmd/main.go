package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/get_booking"
	getShopBookingsHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/get_shop_bookings"
	getShopPreferencesHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/get_shop_preferences"
	updateBookingStatusHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/update_booking_status"
	updateShopPreferencesHandler "github.com/ahmadnk31/fixwise/internal/api/handlers/update_shop_preferences"
	"github.com/ahmadnk31/fixwise/internal/api/middleware"
	"github.com/ahmadnk31/fixwise/internal/config"
	shopCache "github.com/ahmadnk31/fixwise/internal/infra/cache/shop"
	bookingRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/booking"
	shopRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/shop"
	"github.com/ahmadnk31/fixwise/internal/integrations/notifier"
	bookingsService "github.com/ahmadnk31/fixwise/internal/service/bookings"
	preferencesService "github.com/ahmadnk31/fixwise/internal/service/preferences"
	createBookingUC "github.com/ahmadnk31/fixwise/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/ahmadnk31/fixwise/internal/usecase/get_available_slots"
	"github.com/ahmadnk31/fixwise/pkg/dbmetrics"
	"github.com/ahmadnk31/fixwise/pkg/logger"
	"github.com/ahmadnk31/fixwise/pkg/metrics"
	"github.com/ahmadnk31/fixwise/pkg/txmanager"
)

func main() {
	// .env опционален, переменные окружения имеют приоритет
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

	log.Info("Starting FixWise booking service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	shopRepository := shopRepo.NewRepository(wrappedDB)

	// Redis: кэш мастерских
	var cache preferencesService.ShopCache
	if cfg.Redis.CacheEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, shop cache disabled: %v", err)
		} else {
			cache = shopCache.NewCache(redisClient, time.Duration(cfg.Redis.ShopCacheTTL)*time.Second)
			log.Info("Shop cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ShopCacheTTL)
		}
	}

	// Очередь уведомлений
	var bookingNotifier createBookingUC.Notifier
	if cfg.Notifications.Enabled {
		queueClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.QueueDB,
		})
		defer queueClient.Close()

		bookingNotifier = notifier.NewEnqueuer(queueClient, notifier.Options{
			Queue:    cfg.Notifications.Queue,
			MaxRetry: cfg.Notifications.MaxRetry,
			Timeout:  time.Duration(cfg.Notifications.TaskTimeout) * time.Second,
		}, log)
		log.Info("Booking notifications enabled (queue=%s)", cfg.Notifications.Queue)
	}

	var outcomeRecorder createBookingUC.OutcomeRecorder
	if metricsCollector != nil {
		outcomeRecorder = metricsCollector
	}

	// Сервисы
	preferencesSvc := preferencesService.NewService(shopRepository, cache, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, preferencesSvc, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		preferencesSvc,
		bookingRepository,
		txMgr,
		bookingNotifier,
		outcomeRecorder,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		preferencesSvc,
		bookingRepository,
		location,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getShopPreferences := getShopPreferencesHandler.NewHandler(preferencesSvc, log)
	updateShopPreferences := updateShopPreferencesHandler.NewHandler(preferencesSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	bookingCreate := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		bookingCreate = limiter.Middleware(bookingCreate)
		log.Info("Booking rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", bookingCreate).Methods(http.MethodPost)

	api.HandleFunc("/shops/{shopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/preferences", getShopPreferences.Handle).Methods(http.MethodGet)

	// ============================================================
	// OWNER ROUTES (Bearer JWT или X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.AllowUserIDHeader))

	protected.HandleFunc("/shops/{shopId}/preferences", updateShopPreferences.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся постановки уведомлений уже принятых бронирований
	createBookingUseCase.Wait()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
