// Package main is the entry point for the sms-messaging HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/sms-messaging/internal/carrier"
	"github.com/popeskul/sms-messaging/internal/config"
	"github.com/popeskul/sms-messaging/internal/handler"
	"github.com/popeskul/sms-messaging/internal/infrastructure/migrate"
	"github.com/popeskul/sms-messaging/internal/logger"
	"github.com/popeskul/sms-messaging/internal/middleware"
	"github.com/popeskul/sms-messaging/internal/realtime"
	"github.com/popeskul/sms-messaging/internal/repository"
	"github.com/popeskul/sms-messaging/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file (default $CONFIG_PATH or config.yaml)")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	if *configPath == "" {
		*configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Database.AutoMigrate {
		runner := migrate.NewRunner(&migrate.Config{
			DatabaseURL:    cfg.Database.GetURL(),
			MigrationsPath: cfg.Database.MigrationsPath,
		}, log)
		if err := runner.Up(); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := connectRedis(ctx, &cfg.Redis, log)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	gateway := carrier.NewClient(&cfg.Carrier, log)

	var (
		publisher realtime.Publisher
		events    handler.EventSubscriber
	)
	if redisClient != nil {
		hub := realtime.NewHub(redisClient, log)
		publisher = hub
		events = hub
	}

	svc := service.NewService(cfg, repository.NewRepository(db), redisClient, gateway, publisher, log)

	h := handler.NewHandler(svc, handler.Options{
		Webhook:   cfg.Webhook,
		AuthToken: cfg.Carrier.AuthToken,
		Events:    events,
	}, log)

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, log)
	router := setupRouter(h, authenticator)

	limiter := middleware.NewRateLimiter(
		rate.Limit(cfg.Middleware.RateLimit),
		cfg.Middleware.RateLimitBurst,
		"/webhooks/",
	)
	go limiter.Run(ctx)

	middlewareConfig := &middleware.Config{
		Logger:         log,
		RateLimiter:    limiter,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		NoTimeout:      []string{"/sms/events", "/sms/batch"},
	}
	if cfg.Middleware.EnableCORS {
		middlewareConfig.CORS = middleware.NewCORSConfig(cfg.Middleware.AllowedOrigins)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      middleware.Chain(middlewareConfig)(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	if cfg.Reconciler.AutoStart {
		if err := svc.Scheduler.Start(); err != nil {
			log.Error("Failed to start status reconciler on startup", zap.Error(err))
		} else {
			log.Info("Status reconciler started", zap.Duration("interval", cfg.Reconciler.Interval()))
		}
	}

	go func() {
		log.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	if svc.Scheduler.IsRunning() {
		if err := svc.Scheduler.Stop(); err != nil {
			log.Error("Failed to stop status reconciler", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// connectRedis returns nil when Redis is unreachable. Webhook de-duplication
// and realtime events are then disabled, everything else keeps working.
func connectRedis(ctx context.Context, cfg *config.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, webhook de-duplication and realtime events disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
