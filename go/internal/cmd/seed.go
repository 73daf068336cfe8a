package main

import (
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/pitchside/go/internal/leagueerr"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/mcdev12/pitchside/go/internal/teams"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the teams listed in the league file",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := setupDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		app := teams.NewApp(st, clockwork.NewRealClock())
		system := models.Actor{UserID: "seed", IsAdmin: true}
		var created int
		for _, req := range cfg.League.Teams {
			team, err := app.CreateTeam(cmd.Context(), system, req)
			if errors.Is(err, leagueerr.DuplicateTeam) {
				log.Info().Str("team", req.Name).Msg("team already exists, skipping")
				continue
			}
			if err != nil {
				return err
			}
			created++
			log.Info().Str("team_id", team.ID.String()).Str("team", team.Name).Msg("team seeded")
		}
		log.Info().Int("created", created).Int("listed", len(cfg.League.Teams)).Msg("seeding complete")
		return nil
	},
}
