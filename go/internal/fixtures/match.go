package fixtures

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/eligibility"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/settings"
	"github.com/mcdev12/pitchside/go/internal/store"
	"github.com/rs/zerolog/log"
)

// CreateMatchRequest names both teams by their display names
type CreateMatchRequest struct {
	Home    string `json:"home"`
	Away    string `json:"away"`
	Stadium string `json:"stadium"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// EditField is a match attribute EditMatch can change
type EditField string

const (
	FieldHome    EditField = "home"
	FieldAway    EditField = "away"
	FieldStadium EditField = "stadium"
	FieldDate    EditField = "date"
	FieldTime    EditField = "time"
)

// CreateMatch schedules a new match. Administrators only.
func (a *App) CreateMatch(ctx context.Context, actor models.Actor, req CreateMatchRequest) (*MatchView, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}
	kickoff, err := ParseKickoff(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Stadium) == "" {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "stadium is required")
	}

	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		home, err := teamByName(ctx, tx, req.Home)
		if err != nil {
			return nil, err
		}
		away, err := teamByName(ctx, tx, req.Away)
		if err != nil {
			return nil, err
		}
		if err := validateTeams(home.ID, away.ID); err != nil {
			return nil, err
		}
		m := models.Match{
			ID:         uuid.New(),
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			Stadium:    strings.TrimSpace(req.Stadium),
			KickoffAt:  kickoff,
			Status:     models.MatchStatusScheduled,
			CreatedAt:  a.now(),
		}
		if err := tx.CreateMatch(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		return &MatchView{Match: m, Home: *home, Away: *away}, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", v.Match.ID.String()).
		Str("home", v.Home.Name).
		Str("away", v.Away.Name).
		Time("kickoff_at", v.Match.KickoffAt).
		Msg("match created")
	return v, nil
}

// EditMatch changes one field, keeping the rest. Date and time edits keep the
// other half of the kickoff instant.
func (a *App) EditMatch(ctx context.Context, actor models.Actor, id uuid.UUID, field EditField, value string) (*MatchView, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}

	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		m, err := getMatch(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		kickoffDate := m.KickoffAt.Format(dateLayout)
		kickoffTime := m.KickoffAt.Format(timeLayout)

		switch field {
		case FieldHome, FieldAway:
			team, err := teamByName(ctx, tx, value)
			if err != nil {
				return nil, err
			}
			if field == FieldHome {
				m.HomeTeamID = team.ID
			} else {
				m.AwayTeamID = team.ID
			}
		case FieldStadium:
			if strings.TrimSpace(value) == "" {
				return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonNone, "stadium is required")
			}
			m.Stadium = strings.TrimSpace(value)
		case FieldDate, FieldTime:
			if m.Status == models.MatchStatusCancelled {
				return nil, leagueerr.New(leagueerr.Conflict, leagueerr.MatchCancelled, "cannot reschedule a cancelled match")
			}
			if field == FieldDate {
				kickoffDate = value
			} else {
				kickoffTime = value
			}
			if m.KickoffAt, err = ParseKickoff(kickoffDate, kickoffTime); err != nil {
				return nil, err
			}
		default:
			return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidField, "unknown field %q", field)
		}

		if err := validateTeams(m.HomeTeamID, m.AwayTeamID); err != nil {
			return nil, err
		}
		if err := tx.UpdateMatch(ctx, *m); err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		return view(ctx, tx, *m)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Str("field", string(field)).Msg("match edited")
	return v, nil
}

// RescheduleMatch replaces the kickoff instant, keeping the match identity
func (a *App) RescheduleMatch(ctx context.Context, actor models.Actor, id uuid.UUID, date, clock string) (*MatchView, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}
	kickoff, err := ParseKickoff(date, clock)
	if err != nil {
		return nil, err
	}

	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		m, err := getMatch(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if m.Status == models.MatchStatusCancelled {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.MatchCancelled, "cannot reschedule a cancelled match")
		}
		m.KickoffAt = kickoff
		if err := tx.UpdateMatch(ctx, *m); err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		return view(ctx, tx, *m)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Time("kickoff_at", kickoff).Msg("match rescheduled")
	return v, nil
}

// CancelMatch moves a scheduled match to the terminal cancelled state
func (a *App) CancelMatch(ctx context.Context, actor models.Actor, id uuid.UUID, reason string) (*MatchView, error) {
	if err := eligibility.RequireAdmin(actor); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.ReasonRequired, "a cancellation reason is required")
	}

	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		m, err := getMatch(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if m.Status == models.MatchStatusCancelled {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.AlreadyCancelled, "match is already cancelled")
		}
		m.Status = models.MatchStatusCancelled
		m.CancelReason = &reason
		if err := tx.UpdateMatch(ctx, *m); err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		return view(ctx, tx, *m)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Str("reason", reason).Msg("match cancelled")
	return v, nil
}

// MarkMatchDone deletes a played match. Referees or administrators.
func (a *App) MarkMatchDone(ctx context.Context, actor models.Actor, id uuid.UUID) (*MatchView, error) {
	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		if err := eligibility.CheckRefereeOrAdmin(ctx, tx, actor); err != nil {
			return nil, err
		}
		m, err := getMatch(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		v, err := view(ctx, tx, *m)
		if err != nil {
			return nil, err
		}
		if err := tx.DeleteMatch(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete match: %w", err)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("match_id", id.String()).Str("by", actor.UserID).Msg("match completed")
	return v, nil
}

// ShoutMatch announces a scheduled match to the match channel
func (a *App) ShoutMatch(ctx context.Context, actor models.Actor, id uuid.UUID, link string) (*MatchView, error) {
	var channel settings.ChannelRef
	v, err := store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) (*MatchView, error) {
		if err := eligibility.CheckRefereeOrAdmin(ctx, tx, actor); err != nil {
			return nil, err
		}
		s, err := settings.Load(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		if channel = s.MatchChannel; channel == "" {
			return nil, leagueerr.New(leagueerr.InvalidInput, leagueerr.NotConfigured, "match channel is not configured")
		}
		m, err := getMatch(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if m.Status == models.MatchStatusCancelled {
			return nil, leagueerr.New(leagueerr.Conflict, leagueerr.MatchCancelled, "match is cancelled")
		}
		return view(ctx, tx, *m)
	})
	if err != nil {
		return nil, err
	}

	v.Warnings = a.effects.Run(ctx, effects.MatchAnnounce{
		ChannelID: string(channel),
		Match:     v.Line(),
		Link:      link,
	})
	return v, nil
}

// ListUpcoming returns scheduled matches by kickoff. Referees or administrators.
func (a *App) ListUpcoming(ctx context.Context, actor models.Actor) ([]MatchView, error) {
	return store.Run(ctx, a.store, func(ctx context.Context, tx store.Tx) ([]MatchView, error) {
		if err := eligibility.CheckRefereeOrAdmin(ctx, tx, actor); err != nil {
			return nil, err
		}
		matches, err := tx.ListMatches(ctx, models.MatchStatusScheduled)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches: %w", err)
		}
		out := make([]MatchView, 0, len(matches))
		for _, m := range matches {
			v, err := view(ctx, tx, m)
			if err != nil {
				return nil, err
			}
			out = append(out, *v)
		}
		return out, nil
	})
}
