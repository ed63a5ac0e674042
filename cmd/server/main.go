package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/config"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/handler"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/logger"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/metrics"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/middleware"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/queue"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/router"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "hospital-management")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	m := metrics.New()

	// Redis backs rate limiting and the response cache. Both degrade to
	// pass-through when it is disabled or unreachable.
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = &service.AMQPPublisher{URL: cfg.AMQPURL, Queue: cfg.EventsQueue, Logger: zlog}
	}

	facility, err := service.NewFacility(cfg.StaffInitialCapacity, events, m, zlog)
	if err != nil {
		zlog.Fatal("facility init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EventsConsumerEnabled {
		c := &queue.Consumer{URL: cfg.AMQPURL, Queue: cfg.EventsQueue, LogDir: cfg.EventsLogDir, Logger: zlog}
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zlog.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLog(zlog, m))

	router.RegisterRoutes(e, m)
	router.RegisterFacility(e,
		router.Handlers{
			Beds:    handler.NewBedHandler(facility),
			Staff:   handler.NewStaffHandler(facility),
			Billing: handler.NewBillingHandler(facility),
		},
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zlog),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, facility.Generation),
	)

	addr := ":" + cfg.Port
	go func() {
		zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}
