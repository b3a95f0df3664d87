package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		migrationsPath = flag.String("migrations", "migrations", "path to migrations directory")
		command        = flag.String("command", "up", "command to run (up, down, version)")
	)
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("DB_DSN is required")
	}

	// The pgx/v5 migrate driver registers under the pgx5 scheme.
	dsn = strings.Replace(dsn, "postgresql://", "pgx5://", 1)
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+*migrationsPath, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("migration init failed")
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration up failed")
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration down failed")
		}
		log.Info().Msg("rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("get version failed")
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)
	default:
		log.Fatal().Str("command", *command).Msg("unknown command")
	}
}
