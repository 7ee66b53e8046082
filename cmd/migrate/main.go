package main

import (
	"context"
	"flag"
	"os"

	"cinemacompanion/internal/platform/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	logging.Init(logging.Config{Level: os.Getenv("LOG_LEVEL"), Format: "console"})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	fsys, dir := migrationsSource()
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("set goose dialect")
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			log.Fatal().Err(err).Msg("roll back migration")
		}
		log.Info().Msg("migration rolled back")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			log.Fatal().Err(err).Msg("migration status")
		}
	case "create":
		if *name == "" {
			log.Fatal().Msg("name is required for 'create' command")
		}
		if fsys != nil {
			log.Fatal().Msg("set MIGRATIONS_DIR to create migrations on disk")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal().Err(err).Msg("create migration")
		}
		log.Info().Str("name", *name).Msg("migration created")
	default:
		log.Fatal().Str("command", *command).Msg("unknown command; use up, down, status or create")
	}
}
