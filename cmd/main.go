package main

import (
	"fmt"
	"os"

	"clinic-scheduler/cmd/bootstrap"
	"clinic-scheduler/config"
	"clinic-scheduler/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-scheduler",
		Short:        "Multi-tenant clinic scheduling API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	// migrate up
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadForMigrate()
			if err != nil {
				return err
			}
			return bootstrap.RunMigrations(cfg, log)
		},
	})

	// migrate down
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")

			cfg, log, err := loadForMigrate()
			if err != nil {
				return err
			}

			migrator, err := database.NewMigrator(cfg.DB, log)
			if err != nil {
				return err
			}
			defer migrator.Close()

			return migrator.Down(steps)
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(downCmd)

	// migrate version
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadForMigrate()
			if err != nil {
				return err
			}

			migrator, err := database.NewMigrator(cfg.DB, log)
			if err != nil {
				return err
			}
			defer migrator.Close()

			version, dirty, err := migrator.Version()
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%v)\n", version, dirty)
			return nil
		},
	})

	return cmd
}

func loadForMigrate() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
