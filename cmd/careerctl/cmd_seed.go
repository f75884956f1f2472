package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pilot-career-service/internal/infrastructure/config"
	"pilot-career-service/internal/infrastructure/persistence"
	"pilot-career-service/internal/interface/repository"
)

var seedCatalog string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML route catalog into the database",
	Long: `Auto-migrate the catalog tables and upsert airports, airlines and routes
from a YAML file. The database is taken from DB_BACKEND and DB_DSN.

Example:
  DB_BACKEND=sqlite DB_DSN=career.db careerctl seed --catalog routes.yaml
`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalog, "catalog", "", "Path to the YAML route catalog")
	seedCmd.MarkFlagRequired("catalog")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	file, err := repository.LoadCatalogFile(seedCatalog)
	if err != nil {
		return err
	}

	db, err := persistence.NewGormDB(cfg.DBBackend, cfg.DBDSN, false)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer persistence.CloseGormDB(db)

	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := repository.SeedCatalog(cmd.Context(), db, file); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info("Catalog seeded", "airports", len(file.Airports), "airlines", len(file.Airlines), "routes", len(file.Routes))
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d airports, %d airlines, %d routes\n",
		len(file.Airports), len(file.Airlines), len(file.Routes))
	return nil
}
