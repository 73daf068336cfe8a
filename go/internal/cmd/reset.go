package main

import (
	"fmt"

	"github.com/mcdev12/pitchside/go/internal/admin"
	"github.com/mcdev12/pitchside/go/internal/models"
	"github.com/spf13/cobra"
)

var (
	resetAs      string
	resetConfirm []bool
)

var resetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Purge every league table",
	Example: `  pitchside reset --as 123456789 --confirm=true,true,true,true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(resetConfirm) != admin.Confirmations {
			return fmt.Errorf("--confirm needs exactly %d values", admin.Confirmations)
		}
		var confirmations [admin.Confirmations]bool
		copy(confirmations[:], resetConfirm)

		st, err := setupDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		actor := models.Actor{UserID: resetAs, IsAdmin: true}
		return admin.NewResetter(st, cfg.Process.ResetAuthorizedUser).Reset(cmd.Context(), actor, confirmations)
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetAs, "as", "", "user id performing the reset")
	resetCmd.Flags().BoolSliceVar(&resetConfirm, "confirm", nil, "four confirmations, all true")
	_ = resetCmd.MarkFlagRequired("as")
}
