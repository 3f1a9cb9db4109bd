package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/team-insights-api/internal/app"
	"github.com/yukikurage/team-insights-api/internal/config"
	"github.com/yukikurage/team-insights-api/internal/dto"
	"github.com/yukikurage/team-insights-api/internal/logger"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"github.com/yukikurage/team-insights-api/internal/services"
	"go.uber.org/zap"
)

type storeOpener func(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, func(), error)

func main() {
	cfg := config.Load()

	zlog, err := logger.New("team-insights-maintenance", cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if err := newRootCmd(cfg, zlog, app.OpenStore).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, zlog *zap.Logger, open storeOpener) *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:          "maintenance",
		Short:        "Maintenance tasks for the team insights store",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "command timeout")

	withStore := func(cmd *cobra.Command, fn func(ctx context.Context, store repository.Store) error) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		store, closeStore, err := open(ctx, cfg, zlog)
		if err != nil {
			zlog.Error("failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
			return err
		}
		defer closeStore()

		return fn(ctx, store)
	}

	root.AddCommand(&cobra.Command{
		Use:   "repair",
		Short: "Add every project to the teams listed on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store repository.Store) error {
				report, err := services.NewConsistencyRepairer(store, zlog).Repair(ctx)
				if err != nil {
					zlog.Error("repair aborted",
						zap.Int("projects_scanned", report.ProjectsScanned),
						zap.Int("relationships_fixed", report.RelationshipsFixed),
						zap.Error(err),
					)
					return err
				}

				out, err := json.MarshalIndent(dto.ToRepairReportDTO(report), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and indexes of the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// opening the store runs the gorm migrations or the mongo index setup
			return withStore(cmd, func(ctx context.Context, store repository.Store) error {
				zlog.Info("store is up to date", zap.String("driver", cfg.DBDriver))
				return nil
			})
		},
	})

	return root
}
