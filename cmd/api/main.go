package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cinemacompanion/internal/config"
	"cinemacompanion/internal/content"
	"cinemacompanion/internal/httpx"
	"cinemacompanion/internal/platform/imdb"
	"cinemacompanion/internal/platform/logging"
	"cinemacompanion/internal/store"
	"cinemacompanion/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// writeTimeout must exceed the documentary fetch deadline so a slow metadata
// source still answers with the fallback list.
const writeTimeout = 15 * time.Second

func main() {
	// Do not override environment provided by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()

	var (
		users   user.Repository
		catalog content.Repository
		ready   pinger
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool := mustOpenDB(ctx, cfg.Store.DSN)
		defer pool.Close()
		users = user.NewPostgresRepo(pool, cfg.Store.Timeout)
		catalog = content.NewPostgresRepo(pool, cfg.Store.Timeout)
		ready = pool
	default:
		mem := store.NewMemory()
		if cfg.Store.SeedDemo {
			if err := store.SeedDemo(ctx, mem); err != nil {
				log.Fatal().Err(err).Msg("seed demo catalog")
			}
		}
		users, catalog, ready = mem, mem, mem
	}

	imdbClient := imdb.NewClient(imdb.Config{
		BaseURL:    cfg.IMDb.BaseURL,
		APIKey:     cfg.IMDb.APIKey,
		Timeout:    cfg.IMDb.Timeout,
		RPS:        cfg.IMDb.RPS,
		MaxRetries: cfg.IMDb.MaxRetries,
	})
	if cfg.IMDb.FetchDeadline >= writeTimeout {
		log.Fatal().Dur("fetch_deadline", cfg.IMDb.FetchDeadline).Dur("write_timeout", writeTimeout).
			Msg("IMDB_FETCH_DEADLINE must be shorter than the server write timeout")
	}
	if !imdbClient.Configured() {
		log.Warn().Msg("IMDB_API_KEY not set; documentaries will use the fallback list")
	}

	limiter := httpx.NewRateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	defer limiter.Stop()

	h := newHandlers(users, catalog, imdbClient, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg.Server, cfg.Auth.JWTSecret, h, ready, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdown
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("dsn", redactDSN(dsn)).Msg("cannot ping database")
	}
	log.Info().Msg("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
