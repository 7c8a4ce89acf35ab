package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eventhandler "inspekt/internal/events/handler"
	eventstore "inspekt/internal/events/store"
	"inspekt/internal/notification"
	notificationhandler "inspekt/internal/notification/handler"
	"inspekt/internal/platform/config"
	"inspekt/internal/platform/httpserver"
	"inspekt/internal/platform/logger"
	"inspekt/internal/platform/metrics"
	"inspekt/internal/platform/middleware"
	"inspekt/internal/platform/postgres"
	platformredis "inspekt/internal/platform/redis"
	"inspekt/internal/registry"
	registryhandler "inspekt/internal/registry/handler"
	"inspekt/internal/report/render"
	schedulehandler "inspekt/internal/schedule/handler"
	"inspekt/internal/schedule/planner"
	"inspekt/internal/submission"
	submissionhandler "inspekt/internal/submission/handler"
	"inspekt/internal/sweep"
)

// main wires the dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	reg := registry.NewStore()
	registry.Seed(reg)

	// Optional backends fall back to the in-memory reference
	// implementations when not configured.
	var store eventstore.Store = eventstore.NewInMemoryStore()
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		store = eventstore.NewPostgresStore(db)
		log.Info("using postgres event store")
	}

	var feed notification.Feed = notification.NewInMemoryFeed()
	rdb, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		feed = notification.NewRedisFeed(rdb.Client, log)
		log.Info("using redis notification feed")
	}

	renderer := render.NewExcelRenderer(cfg.ReportDir, log)
	planSvc := planner.NewService(reg, store, feed, m, log)
	submitSvc := submission.NewService(reg, store, feed, renderer, m, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	registryhandler.New(reg).Register(router)
	eventhandler.New(store).Register(router)
	schedulehandler.New(planSvc).Register(router)
	submissionhandler.New(submitSvc).Register(router)
	notificationhandler.New(feed).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := sweep.NewWorker(store, feed, m, log, cfg.SweepInterval)
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("sweep worker stopped", "error", err)
		}
	}()

	go func() {
		log.Info("starting inspekt", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
