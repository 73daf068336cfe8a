package main

import (
	"github.com/mcdev12/pitchside/go/internal/store/postgres"
	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations (or revert them with --down)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := setupDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		if migrateDown {
			return postgres.MigrateDown(st.DB())
		}
		return postgres.Migrate(st.DB())
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "revert every applied migration")
}
