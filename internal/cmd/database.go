package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hmakino/quizrush/internal/db"
	"github.com/hmakino/quizrush/internal/dbconfig"
)

func setupDatabase(ctx context.Context) (*sql.DB, error) {
	cfg := dbconfig.NewConfigFromEnv()

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	event := log.Info().Str("driver", string(cfg.Driver))
	if cfg.Driver == dbconfig.DriverPostgres {
		event = event.Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Database)
	} else {
		event = event.Str("path", cfg.SQLitePath)
	}
	event.Msg("connected to database")

	return database, nil
}
