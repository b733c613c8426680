package main

import (
	"fmt"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Renishchandera/gameforge-ai/internal/bootstrap"
	"github.com/Renishchandera/gameforge-ai/internal/infra/db"
)

var backfillLegacy bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the database schema.

With --backfill-legacy, rows that still use the single-valued genre/platform
columns are rewritten into the list columns.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&backfillLegacy, "backfill-legacy", false, "rewrite legacy genre/platform columns")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	inj := bootstrap.BuildContainer(configPath)
	bootstrap.ProvideDB(inj)

	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	d, err := do.Invoke[*gorm.DB](inj)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close(d) }()

	if err := db.Migrate(d); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema migrated")

	if backfillLegacy {
		n, err := db.BackfillLegacy(cmd.Context(), d, log)
		if err != nil {
			return fmt.Errorf("backfill legacy columns: %w", err)
		}
		log.Info("legacy rows rewritten", zap.Int("rows", n))
	}
	return nil
}
