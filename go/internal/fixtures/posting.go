package fixtures

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// PostingResult reports a posting change and the listing it refers to
type PostingResult struct {
	Posting  models.FixturePosting `json:"posting"`
	Days     []models.FixtureDay   `json:"days,omitempty"`
	Purged   int                   `json:"purged,omitempty"`
	Warnings []effects.Warning     `json:"warnings,omitempty"`
}

// PostFixtures publishes every scheduled match as one listing, superseding
// any earlier posting.
func (a *App) PostFixtures(ctx context.Context, actor models.Actor) (*PostingResult, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		res      PostingResult
		previous *models.FixturePosting
	)
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		s, err := settings.Load(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if s.FixturesChannel == "" {
			return leagueerr.New(leagueerr.InvalidInput, leagueerr.NotConfigured, "fixtures channel is not configured")
		}
		matches, err := tx.ListMatches(ctx, models.MatchStatusScheduled)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		if len(matches) == 0 {
			return leagueerr.New(leagueerr.NotFound, leagueerr.NoScheduled, "there are no scheduled matches")
		}
		if res.Days, err = listing(ctx, tx, matches); err != nil {
			return err
		}
		if previous, err = currentPosting(ctx, tx); err != nil {
			return err
		}

		res.Posting = models.FixturePosting{
			Token:         uuid.New(),
			ChannelID:     string(s.FixturesChannel),
			AnchorMatchID: matches[0].ID,
			PostedAt:      a.now(),
		}
		if err := tx.PutFixturePosting(ctx, res.Posting); err != nil {
			return fmt.Errorf("failed to save fixture posting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("token", res.Posting.Token.String()).
		Int("days", len(res.Days)).
		Msg("fixtures posted")

	var fx []effects.Effect
	if previous != nil && !previous.Archived {
		fx = append(fx, effects.DeleteMessage{ChannelID: previous.ChannelID, Token: previous.Token})
	}
	fx = append(fx, effects.FixtureListing{ChannelID: res.Posting.ChannelID, Token: res.Posting.Token, Days: res.Days})
	res.Warnings = a.effects.Run(ctx, fx...)
	return &res, nil
}

// ArchiveFixtures marks the outstanding posting complete and purges every
// match. Afterwards nothing is posted.
func (a *App) ArchiveFixtures(ctx context.Context, actor models.Actor) (*PostingResult, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var res PostingResult
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		p, err := currentPosting(ctx, tx)
		if err != nil {
			return err
		}
		if err := eligibility.CanArchiveFixtures(p); err != nil {
			return err
		}
		matches, err := tx.ListMatches(ctx, models.MatchStatusScheduled)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		if res.Days, err = listing(ctx, tx, matches); err != nil {
			return err
		}

		if res.Purged, err = tx.DeleteAllMatches(ctx); err != nil {
			return fmt.Errorf("failed to purge matches: %w", err)
		}
		if err := tx.ClearFixturePosting(ctx); err != nil {
			return fmt.Errorf("failed to clear fixture posting: %w", err)
		}
		p.Archived = true
		res.Posting = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("token", res.Posting.Token.String()).Int("purged", res.Purged).Msg("fixtures archived")

	res.Warnings = a.effects.Run(ctx, effects.FixtureCompleted{
		ChannelID: res.Posting.ChannelID,
		Token:     res.Posting.Token,
		Days:      res.Days,
	})
	return &res, nil
}

// RemoveFixtures withdraws the outstanding posting, keeping the matches
func (a *App) RemoveFixtures(ctx context.Context, actor models.Actor) (*PostingResult, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var res PostingResult
	err := a.store.Do(ctx, func(ctx context.Context, tx store.Tx) error {
		p, err := currentPosting(ctx, tx)
		if err != nil {
			return err
		}
		if err := eligibility.CanRemoveFixtures(p); err != nil {
			return err
		}
		if err := tx.ClearFixturePosting(ctx); err != nil {
			return fmt.Errorf("failed to clear fixture posting: %w", err)
		}
		res.Posting = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("token", res.Posting.Token.String()).Msg("fixtures removed")

	res.Warnings = a.effects.Run(ctx, effects.DeleteMessage{ChannelID: res.Posting.ChannelID, Token: res.Posting.Token})
	return &res, nil
}

// Posting returns the outstanding posting, or nil
func (a *App) Posting(ctx context.Context) (*models.FixturePosting, error) {
	return store.Run(ctx, a.store, currentPosting)
}

func currentPosting(ctx context.Context, tx store.Tx) (*models.FixturePosting, error) {
	p, err := tx.GetFixturePosting(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture posting: %w", err)
	}
	return p, nil
}

func listing(ctx context.Context, tx store.Tx, matches []models.Match) ([]models.FixtureDay, error) {
	teams, err := tx.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	names := make(map[uuid.UUID]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	lines := make([]models.FixtureLine, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, models.FixtureLine{
			MatchID:   m.ID,
			HomeTeam:  names[m.HomeTeamID],
			AwayTeam:  names[m.AwayTeamID],
			Stadium:   m.Stadium,
			KickoffAt: m.KickoffAt,
		})
	}
	return GroupByDate(lines), nil
}

// GroupByDate buckets lines by UTC calendar date. Days come out in ascending
// date order and lines within a day by kickoff.
func GroupByDate(lines []models.FixtureLine) []models.FixtureDay {
	byDate := make(map[string][]models.FixtureLine)
	for _, l := range lines {
		key := l.KickoffAt.UTC().Format(dateLayout)
		byDate[key] = append(byDate[key], l)
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	days := make([]models.FixtureDay, 0, len(keys))
	for _, k := range keys {
		day := byDate[k]
		slices.SortStableFunc(day, func(a, b models.FixtureLine) int {
			return a.KickoffAt.Compare(b.KickoffAt)
		})
		days = append(days, models.FixtureDay{Date: k, Matches: day})
	}
	return days
}
