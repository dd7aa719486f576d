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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/cache"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/config"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/consumer"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/db"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/dedup"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/hub"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/logging"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
)

// janitorInterval is how often idle sessions are swept
const janitorInterval = time.Minute

func main() {
	cfg := config.LoadConfig()
	logger := logging.New(cfg.Log)
	log := logging.Component(logger, "main")

	log.Info("🚀 Starting Scout Gateway...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]handlers.Pinger{}

	// Redis backs the response cache, write gates and the update stream.
	// Without it the gateway still serves, uncached and single-instance.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()

	redisUp := true
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisUp = false
		log.WithError(err).Warn("⚠️  Redis unavailable, running without cache and realtime fan-out across instances")
	} else {
		log.WithField("addr", cfg.Redis.URL).Info("✓ Connected to Redis")
	}
	checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	// Roster database; static rosters when unreachable
	var (
		rosters scout.RosterSource = scout.StaticRosters{}
		teams   feed.TeamSource
	)
	rosterDB, err := db.NewClient(cfg.Postgres.DSN)
	if err != nil {
		log.WithError(err).Warn("⚠️  Roster database unavailable, using built-in rosters")
	} else {
		defer rosterDB.Close()
		log.Info("✓ Connected to roster database")
		rosters = db.NewRosterSource(rosterDB, logging.Component(logger, "rosters"))
		teams = rosterDB
		checks["postgres"] = rosterDB
	}

	// Realtime hub
	h := hub.NewHub(logging.Component(logger, "realtime"))
	go h.Run(ctx)

	// Football backend client and write gates
	var (
		responseCache upstream.Cache
		predictions   feed.PredictionGate
		syncLimiter   feed.SyncGate
		notifier      scout.Notifier = h
	)
	if redisUp {
		responseCache = cache.NewResponseCache(redisClient, cfg.Redis.CacheTTL)
		predictions = dedup.NewDeduplicator(redisClient, cfg.Scout.PredictionDedupTTL)
		syncLimiter = ratelimit.NewTokenBucket(redisClient, "match-sync", cfg.Scout.SyncMaxPerMinute)
		notifier = publisher.NewStreamPublisher(redisClient, cfg.Stream.SelectionStream)

		streamConsumer := consumer.NewStreamConsumer(redisClient, h, cfg.Stream, logging.Component(logger, "consumer"))
		go func() {
			if err := streamConsumer.Start(ctx); err != nil {
				log.WithError(err).Error("❌ Stream consumer stopped")
			}
		}()
	}

	football := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, responseCache, logger.WithField("upstream", cfg.Upstream.BaseURL))
	pages := feed.NewService(football, teams, predictions, syncLimiter, logging.Component(logger, "feed"))

	// Scout sessions
	store := scout.NewStore(rosters, notifier, cfg.Scout.SessionIdle, logging.Component(logger, "scout"))
	go store.Run(ctx, janitorInterval)

	handler := handlers.NewHandler(ctx, handlers.Deps{
		Store:    store,
		Rosters:  rosters,
		Feed:     pages,
		Hub:      h,
		Football: football,
		Checks:   checks,
	}, logging.Component(logger, "http"))

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logging.Component(logger, "access")))
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler.Register(r)

	// WebSocket connections are long-lived, so no write timeout
	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.Server.Addr,
			"upstream": cfg.Upstream.BaseURL,
		}).Info("✓ Scout Gateway listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("❌ Server error")
			cancel()
			os.Exit(1)
		}

	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("🛑 Shutting down...")

		// Stop hub, consumer and janitor
		cancel()

		// Give outstanding requests a deadline for completion
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("⚠️  Graceful shutdown failed")
			if err := srv.Close(); err != nil {
				log.WithError(err).Error("❌ Could not stop server")
			}
		}
	}

	log.Info("✓ Shutdown complete")
}
