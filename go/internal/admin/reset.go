// Package admin holds irreversible league maintenance operations.
package admin

import (
	"context"
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// Confirmations is how many independent confirmations Reset requires
const Confirmations = 4

// Resetter wipes league state
type Resetter struct {
	store          store.Store
	authorizedUser string
}

// NewResetter allows only authorizedUser to reset. An empty user disables Reset.
func NewResetter(s store.Store, authorizedUser string) *Resetter {
	return &Resetter{store: s, authorizedUser: authorizedUser}
}

// Reset purges every entity once the authorized user has confirmed every step
func (r *Resetter) Reset(ctx context.Context, actor models.Actor, confirmations [Confirmations]bool) error {
	if r.authorizedUser == "" {
		return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotConfigured, "reset is disabled")
	}
	if actor.UserID != r.authorizedUser {
		return leagueerr.New(leagueerr.Unauthorized, leagueerr.NotAuthorizedFor, "you are not authorized to reset the league")
	}
	for i, ok := range confirmations {
		if !ok {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.MissingConfirmation, "confirmation %d of %d is missing", i+1, Confirmations)
		}
	}

	if err := r.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.Purge(ctx)
	}); err != nil {
		return fmt.Errorf("failed to reset league: %w", err)
	}

	log.Warn().Str("by", actor.UserID).Msg("league data reset")
	return nil
}
