package settings

import (
	"context"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// App reads and updates persisted settings
type App struct {
	store store.Store
}

// NewApp creates a new settings App
func NewApp(s store.Store) *App {
	return &App{store: s}
}

// Get returns the current settings
func (a *App) Get(ctx context.Context) (Settings, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (Settings, error) {
		return Load(ctx, tx)
	})
}

// Set updates one setting. Administrators only.
func (a *App) Set(ctx context.Context, actor models.Actor, key Key, value string) (Settings, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return Settings{}, err
	}
	if !key.Known() {
		return Settings{}, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidSetting, "unknown setting %q", key)
	}

	updated, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (Settings, error) {
		current, err := Load(ctx, tx)
		if err != nil {
			return Settings{}, err
		}
		next, err := current.With(key, value)
		if err != nil {
			return Settings{}, err
		}
		if err := Save(ctx, tx, key, next); err != nil {
			return Settings{}, err
		}
		return next, nil
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to set %s: %w", key, err)
	}

	log.Info().Str("key", string(key)).Str("value", updated.Value(key)).Str("by", actor.UserID).Msg("setting updated")
	return updated, nil
}
