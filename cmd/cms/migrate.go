package main

import (
	"context"
	"time"

	"github.com/deppfellow/go-cms/internal/config"
	"github.com/deppfellow/go-cms/internal/database"
	"github.com/deppfellow/go-cms/internal/logger"
	"github.com/spf13/cobra"
)

const migrateTimeout = 2 * time.Minute

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.Observability)

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}
	return nil
}
