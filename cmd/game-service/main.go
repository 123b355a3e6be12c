package main

import (
	"context"
	"net/http"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/explainit/backend/internal/config"
	"github.com/explainit/backend/internal/game"
	"github.com/explainit/backend/internal/handlers"
	"github.com/explainit/backend/internal/judge"
	"github.com/explainit/backend/internal/logger"
	"github.com/explainit/backend/internal/store"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	durable := newDurableStore(ctx, cfg)
	memory := store.NewMemoryStore(cfg.RoomTTL)
	memory.StartJanitor(ctx, time.Hour)
	rooms := store.NewFallbackStore(durable, memory)

	aiJudge := judge.New(cfg.TogetherAPIKey, cfg.TogetherBaseURL, cfg.TogetherModel)
	rules := game.Rules{AllowResubmit: cfg.AllowResubmit}

	r := mux.NewRouter()
	gameHandler := handlers.NewGameHandler(rooms, aiJudge, rules, cfg.PublicURL)
	gameHandler.Register(r)
	r.Use(handlers.Recover, handlers.RequestLog)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting game service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down game service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("game service exited")
}

// newDurableStore picks the durable backend from config: Postgres when a
// DATABASE_URL is set, Redis when a REDIS_URL is, else none. A backend
// that fails at startup is skipped rather than fatal; the volatile
// fallback keeps the service usable within one process lifetime.
func newDurableStore(ctx context.Context, cfg *config.Config) store.RoomStore {
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("postgres unavailable, continuing without it")
		} else {
			log.Info().Msg("using postgres room store")
			return pg
		}
	}

	if cfg.RedisURL != "" {
		opts := &redis.Options{
			Addr:         cfg.RedisURL,
			Password:     cfg.RedisPassword,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
		// Accept both host:port and redis:// URL formats.
		if strings.HasPrefix(cfg.RedisURL, "redis://") || strings.HasPrefix(cfg.RedisURL, "rediss://") {
			if parsed, err := url.Parse(cfg.RedisURL); err == nil {
				opts.Addr = parsed.Host
				if parsed.User != nil {
					opts.Username = parsed.User.Username()
					if password, ok := parsed.User.Password(); ok {
						opts.Password = password
					}
				}
			}
		}
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without it")
		} else {
			log.Info().Msg("using redis room store")
			return store.NewRedisStore(client, cfg.RoomTTL)
		}
	}

	log.Warn().Msg("no durable store configured, rooms are volatile")
	return nil
}
