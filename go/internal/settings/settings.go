// Package settings holds the persisted league configuration as a typed value
// and the transaction window controller.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcdev12/pitchside/go/internal/leagueerr"
)

// ChannelRef references a chat-platform channel
type ChannelRef string

// RoleRef references a chat-platform group role
type RoleRef string

// Key names a persisted setting
type Key string

const (
	KeyFixturesChannel       Key = "fixtures_channel"
	KeyMatchChannel          Key = "match_channel"
	KeyLogChannel            Key = "log_channel"
	KeyTransactionsChannel   Key = "transactions_channel"
	KeyManagerRole           Key = "manager_role"
	KeyAssistantManagerRole  Key = "assistant_manager_role"
	KeyRefereeRole           Key = "referee_role"
	KeyTransactionWindowOpen Key = "transaction_window_open"
)

// Keys lists every recognised setting
var Keys = []Key{
	KeyFixturesChannel,
	KeyMatchChannel,
	KeyLogChannel,
	KeyTransactionsChannel,
	KeyManagerRole,
	KeyAssistantManagerRole,
	KeyRefereeRole,
	KeyTransactionWindowOpen,
}

// Settings is the league's routing and policy configuration.
// Empty references mean "not configured".
type Settings struct {
	FixturesChannel       ChannelRef `json:"fixtures_channel,omitempty"`
	MatchChannel          ChannelRef `json:"match_channel,omitempty"`
	LogChannel            ChannelRef `json:"log_channel,omitempty"`
	TransactionsChannel   ChannelRef `json:"transactions_channel,omitempty"`
	ManagerRole           RoleRef    `json:"manager_role,omitempty"`
	AssistantManagerRole  RoleRef    `json:"assistant_manager_role,omitempty"`
	RefereeRole           RoleRef    `json:"referee_role,omitempty"`
	TransactionWindowOpen bool       `json:"transaction_window_open"`
}

// Reader is the store view settings are loaded from
type Reader interface {
	ListSettings(ctx context.Context) (map[string]string, error)
}

// Writer is the store view settings are saved through
type Writer interface {
	PutSetting(ctx context.Context, key, value string) error
}

// Load reads and validates the persisted settings. Unknown keys are ignored.
func Load(ctx context.Context, r Reader) (Settings, error) {
	raw, err := r.ListSettings(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to list settings: %w", err)
	}
	return Parse(raw)
}

// Parse converts raw key/value pairs into Settings
func Parse(raw map[string]string) (Settings, error) {
	var s Settings
	for k, v := range raw {
		var err error
		if s, err = s.With(Key(k), v); err != nil {
			if leagueerr.ReasonOf(err) == leagueerr.InvalidSetting && !Key(k).Known() {
				continue
			}
			return Settings{}, err
		}
	}
	return s, nil
}

// Known reports whether k is a recognised key
func (k Key) Known() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// With returns a copy of s with key set from its string form.
func (s Settings) With(key Key, value string) (Settings, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyFixturesChannel:
		s.FixturesChannel = ChannelRef(value)
	case KeyMatchChannel:
		s.MatchChannel = ChannelRef(value)
	case KeyLogChannel:
		s.LogChannel = ChannelRef(value)
	case KeyTransactionsChannel:
		s.TransactionsChannel = ChannelRef(value)
	case KeyManagerRole:
		s.ManagerRole = RoleRef(value)
	case KeyAssistantManagerRole:
		s.AssistantManagerRole = RoleRef(value)
	case KeyRefereeRole:
		s.RefereeRole = RoleRef(value)
	case KeyTransactionWindowOpen:
		if value == "" {
			s.TransactionWindowOpen = false
			return s, nil
		}
		open, err := strconv.ParseBool(value)
		if err != nil {
			return s, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidSetting,
				"%s must be true or false, got %q", key, value)
		}
		s.TransactionWindowOpen = open
	default:
		return s, leagueerr.New(leagueerr.InvalidInput, leagueerr.InvalidSetting, "unknown setting %q", key)
	}
	return s, nil
}

// Save writes one key in its canonical string form
func Save(ctx context.Context, w Writer, key Key, s Settings) error {
	if err := w.PutSetting(ctx, string(key), s.Value(key)); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Value returns the canonical string form of key
func (s Settings) Value(key Key) string {
	switch key {
	case KeyFixturesChannel:
		return string(s.FixturesChannel)
	case KeyMatchChannel:
		return string(s.MatchChannel)
	case KeyLogChannel:
		return string(s.LogChannel)
	case KeyTransactionsChannel:
		return string(s.TransactionsChannel)
	case KeyManagerRole:
		return string(s.ManagerRole)
	case KeyAssistantManagerRole:
		return string(s.AssistantManagerRole)
	case KeyRefereeRole:
		return string(s.RefereeRole)
	case KeyTransactionWindowOpen:
		return strconv.FormatBool(s.TransactionWindowOpen)
	}
	return ""
}
