package main

import (
	"context"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/store/postgres"
	"github.com/rs/zerolog/log"
)

func setupDatabase(ctx context.Context) (*postgres.Store, error) {
	db := cfg.Database
	st, err := postgres.Open(ctx, db.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	log.Info().
		Str("user", db.User).
		Str("host", db.Host).
		Int("port", db.Port).
		Str("database", db.Database).
		Msg("Connected to database")
	return st, nil
}
