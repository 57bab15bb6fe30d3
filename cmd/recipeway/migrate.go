package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/recipeway/recipeway/internal/config"
	"github.com/recipeway/recipeway/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the local state schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.State.Path)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database); err != nil {
				return err
			}
			log.Println("migrations complete")
			return nil
		},
	}
}
