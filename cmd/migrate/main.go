package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/pkg/utils"
)

// Applies the web_sessions schema used when SESSION_STORE=postgres.
//
//	migrate [up|down|version|steps N]
func main() {
	envErr := godotenv.Load()
	logger := utils.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	if envErr != nil {
		logger.Info().Msg("no .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		logger.Fatal().Msg("DB_URL environment variable is required")
	}

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		logger.Fatal().Err(err).Msg("locate migrations")
	}

	m, err := migrate.New("file://"+dir, dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open migrations")
	}
	defer m.Close()

	args := os.Args[1:]
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}
	log := logger.With().Str("command", cmd).Str("dir", dir).Logger()

	switch cmd {
	case "up":
		apply(log, m.Up())
	case "down":
		apply(log, m.Down())
	case "steps":
		if len(args) < 2 {
			log.Fatal().Msg("steps requires a count, e.g. steps -1")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid step count")
		}
		apply(log, m.Steps(n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("read migration version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migration version")
	default:
		log.Fatal().Msg("unknown command")
	}
}

func apply(log zerolog.Logger, err error) {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("no change")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("migration applied")
}

// migrationsDir prefers an explicit directory, then ./migrations, then the one
// shipped next to the binary.
func migrationsDir(explicit string) (string, error) {
	candidates := []string{explicit, "migrations"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "migrations"))
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("migrations directory not found; set MIGRATIONS_DIR")
}
