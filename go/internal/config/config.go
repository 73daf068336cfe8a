// Package config loads process settings from the environment and league
// rules from a yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mcdev12/pitchside/go/internal/dbconfig"
	"github.com/mcdev12/pitchside/go/internal/effects"
	"github.com/mcdev12/pitchside/go/internal/roster"
	"github.com/mcdev12/pitchside/go/internal/teams"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration of the league service.
type Config struct {
	Database dbconfig.Config
	Process  Process
	League   League
}

// Process holds settings read from environment variables.
type Process struct {
	NATSURL             string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	ResetAuthorizedUser string        `env:"RESET_AUTHORIZED_USER"`
	DemandConfirmTTL    time.Duration `env:"DEMAND_CONFIRM_TTL"`
	LeagueConfig        string        `env:"LEAGUE_CONFIG" envDefault:"league.yaml"`
	AllowedOrigins      []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// League is the yaml rules file.
type League struct {
	Roster   roster.Rules              `yaml:"roster"`
	Sweeper  Sweeper                   `yaml:"sweeper"`
	Effects  effects.JetStreamConfig   `yaml:"effects"`
	Commands Commands                  `yaml:"commands"`
	Teams    []teams.CreateTeamRequest `yaml:"teams"`
	// EffectTimeout bounds a single side-effect dispatch.
	EffectTimeout time.Duration `yaml:"effect_timeout"`
}

// Sweeper schedules the expired-demand cleanup job.
type Sweeper struct {
	Cron string `yaml:"cron"`
}

// Commands configures the NATS command intake.
type Commands struct {
	Subject    string        `yaml:"subject"`
	QueueGroup string        `yaml:"queue_group"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultLeague returns the rules used when no file is present.
func DefaultLeague() League {
	return League{
		Roster:  roster.DefaultRules(),
		Sweeper: Sweeper{Cron: "*/5 * * * *"},
		Effects: effects.DefaultJetStreamConfig(),
		Commands: Commands{
			Subject:    "league.commands.>",
			QueueGroup: "pitchside",
			Timeout:    10 * time.Second,
		},
		EffectTimeout: 5 * time.Second,
	}
}

// Load reads .env (if present), the environment and the league file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg.Database); err != nil {
		return nil, fmt.Errorf("parse database env: %w", err)
	}
	if err := env.Parse(&cfg.Process); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	league, err := LoadLeague(cfg.Process.LeagueConfig)
	if err != nil {
		return nil, err
	}
	cfg.League = *league
	if cfg.Process.DemandConfirmTTL > 0 {
		cfg.League.Roster.DemandTTL = cfg.Process.DemandConfirmTTL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadLeague parses the league file at path over the defaults. A missing
// file yields the defaults.
func LoadLeague(path string) (*League, error) {
	league := DefaultLeague()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", path).Msg("league config not found, using defaults")
		return &league, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read league config: %w", err)
	}
	if err := yaml.Unmarshal(data, &league); err != nil {
		return nil, fmt.Errorf("failed to parse league config: %w", err)
	}
	return &league, nil
}

func (c *Config) Validate() error {
	if c.Process.NATSURL == "" {
		return fmt.Errorf("NATS_URL is required")
	}
	switch strings.ToLower(c.Process.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Process.LogFormat)
	}
	return c.League.Validate()
}

func (l *League) Validate() error {
	if l.Roster.DemandLimit < 0 {
		return fmt.Errorf("roster.demand_limit must not be negative")
	}
	if l.Roster.AssistantCapacity < 1 {
		return fmt.Errorf("roster.assistant_capacity must be at least 1")
	}
	if l.Roster.DemandTTL <= 0 {
		return fmt.Errorf("roster.demand_confirm_ttl must be positive")
	}
	if l.Sweeper.Cron == "" {
		return fmt.Errorf("sweeper.cron is required")
	}
	if l.Effects.StreamName == "" || l.Effects.SubjectPrefix == "" {
		return fmt.Errorf("effects stream name and subject prefix are required")
	}
	if l.Commands.Subject == "" {
		return fmt.Errorf("commands.subject is required")
	}
	if l.EffectTimeout <= 0 {
		return fmt.Errorf("effect_timeout must be positive")
	}
	seen := make(map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		if t.Name == "" || t.RoleID == "" {
			return fmt.Errorf("seed team needs a name and role_id")
		}
		if seen[t.RoleID] {
			return fmt.Errorf("duplicate seed team role %s", t.RoleID)
		}
		seen[t.RoleID] = true
	}
	return nil
}
