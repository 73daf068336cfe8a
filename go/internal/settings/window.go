package settings

import (
	"context"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// Window is the process-wide transaction window toggle. While open, demand
// limits do not apply.
type Window struct {
	store store.Store
}

// NewWindow creates a transaction window controller
func NewWindow(s store.Store) *Window {
	return &Window{store: s}
}

// Open opens the transaction window. Administrators only.
func (w *Window) Open(ctx context.Context, actor models.Actor) error {
	return w.set(ctx, actor, true)
}

// Close closes the transaction window. Administrators only.
func (w *Window) Close(ctx context.Context, actor models.Actor) error {
	return w.set(ctx, actor, false)
}

// IsOpen reports the current window state
func (w *Window) IsOpen(ctx context.Context) (bool, error) {
	return store.Run(ctx, w.store, func(ctx context.Context, tx store.Tx) (bool, error) {
		return IsWindowOpen(ctx, tx)
	})
}

// IsWindowOpen reads the window state inside an existing unit of work
func IsWindowOpen(ctx context.Context, r Reader) (bool, error) {
	s, err := Load(ctx, r)
	if err != nil {
		return false, err
	}
	return s.TransactionWindowOpen, nil
}

func (w *Window) set(ctx context.Context, actor models.Actor, open bool) error {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return err
	}
	err := w.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		s, err := Load(ctx, tx)
		if err != nil {
			return err
		}
		s.TransactionWindowOpen = open
		return Save(ctx, tx, KeyTransactionWindowOpen, s)
	})
	if err != nil {
		return fmt.Errorf("failed to toggle transaction window: %w", err)
	}
	log.Info().Bool("open", open).Str("by", actor.UserID).Msg("transaction window toggled")
	return nil
}
