package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/petrichor-games/duelist/internal/config"
	"github.com/petrichor-games/duelist/internal/gateway"
	"github.com/petrichor-games/duelist/internal/repositories/characters"
	"github.com/petrichor-games/duelist/internal/repositories/combats"
	combatsvc "github.com/petrichor-games/duelist/internal/services/combat"
	roomsync "github.com/petrichor-games/duelist/internal/sync"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	} else {
		log.Info().Msg("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("redis", cfg.Redis.Addr).
		Dur("poll_interval", cfg.Sync.PollInterval).
		Msg("starting duelist server")

	var (
		combatRepo    combats.Repository
		combatWatcher combats.Watcher
		characterRepo characters.Repository
		redisClient   *redis.Client
	)

	// Try Redis; fall back to in-memory repositories for store-less
	// development runs. A single-process server does not need the shared
	// store to stay consistent with itself.
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	pingErr := redisClient.Ping(pingCtx).Err()
	cancelPing()

	if pingErr != nil {
		log.Warn().Err(pingErr).Msg("redis unavailable, using in-memory repositories")
		_ = redisClient.Close()
		redisClient = nil

		memRepo := combats.NewInMemory()
		combatRepo = memRepo
		combatWatcher = memRepo
		characterRepo = characters.NewInMemory()
	} else {
		log.Info().Msg("connected to redis")
		redisRepo := combats.NewRedis(&combats.RedisRepoConfig{Client: redisClient})
		combatRepo = redisRepo
		combatWatcher = redisRepo
		characterRepo = characters.NewRedis(redisClient)
	}

	service := combatsvc.NewService(&combatsvc.ServiceConfig{
		Repository:          combatRepo,
		CharacterRepository: characterRepo,
		Logger:              log.With().Str("component", "combat").Logger(),
	})

	coordinator := roomsync.NewCoordinator(&roomsync.CoordinatorConfig{
		Repository:   combatRepo,
		Watcher:      combatWatcher,
		PollInterval: cfg.Sync.PollInterval,
		Logger:       log.With().Str("component", "sync").Logger(),
	})

	hub := gateway.NewHub(coordinator, log.With().Str("component", "hub").Logger())
	handler := gateway.NewHandler(&gateway.HandlerConfig{
		Service: service,
		Hub:     hub,
		Logger:  log.With().Str("component", "gateway").Logger(),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Msg("server running, press CTRL-C to exit")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis connection")
		}
	}
}
