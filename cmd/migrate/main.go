package main

import (
	"database/sql"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pubgoods/internal/infra"
)

// Applies the schema migrations in order, tracking progress in the
// schema_migrations table so reruns are safe.
func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}

	applied, err := runMigrations(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Int("applied", applied).Msg("migrations completed")
}
