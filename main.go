package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/api"
	"salon-booking/appointment"
	"salon-booking/booking"
	"salon-booking/calendar"
	"salon-booking/config"
	"salon-booking/database"
	"salon-booking/logging"
	"salon-booking/metrics"
	"salon-booking/schedule"
	"salon-booking/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config:", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal("init logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	table, err := cfg.Hours()
	if err != nil {
		return err
	}

	logger.Info("attempting to connect to database")
	db, err := database.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer db.Close()
	logger.Info("successfully connected to database")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache falls back to Postgres on every redis error.
		logger.Warn("redis unavailable, service lookups will hit the database", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	clock := calendar.SystemClock{Location: loc}

	appointments := appointment.NewAccessor(db, loc)
	services := service.NewCache(service.NewAccessor(db), rdb, cfg.ServiceCacheTTL, logger)
	boards := schedule.NewRegistry(clock, appointments, logger, m, cfg.MaxAdminConsoles)
	defer boards.Close()

	server := api.NewAPI(api.Options{
		Checker:         booking.NewChecker(table, appointments, services, logger, m),
		Appointments:    appointments,
		Services:        services,
		Boards:          boards,
		Hours:           table,
		Location:        loc,
		Clock:           clock,
		PublicIncrement: cfg.PublicSlotIncrement,
		AdminIncrement:  cfg.AdminSlotIncrement,
		Logger:          logger,
		Metrics:         m,
		Gatherer:        reg,
		AllowedOrigins:  cfg.AllowedOrigins,
	})
	server.RegisterRoutes()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
