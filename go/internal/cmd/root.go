package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcdev12/pitchside/go/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pitchside",
	Short: "Soccer league core for chat-platform communities",
	Long: `pitchside runs the league core: rosters, fixtures, referees and stats.

Commands:
  serve    Run the command server, live feed and housekeeping jobs
  migrate  Apply or revert database migrations
  seed     Create the teams listed in the league file
  reset    Purge every league table`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cfg.Process.LogLevel, cfg.Process.LogFormat)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, resetCmd)
}

func setupLogging(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if strings.EqualFold(format, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
