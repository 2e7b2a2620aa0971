package cmd

import (
	"context"
	"fmt"

	"venue-manager/core/config"
	"venue-manager/core/logger"
	"venue-manager/core/storage"
	"venue-manager/feature/venues"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backupCmd is the parent command for remote backup operations.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage remote table backups",
	Long:  `Restore or remove the venue table backups held in the configured bucket.`,
}

// backupRestoreCmd downloads a backup over the local curated table.
var backupRestoreCmd = &cobra.Command{
	Use:   "restore <namespace>",
	Short: "Restore a curated table from its remote backup",
	Long: `Downloads the remote backup of one namespace table and overwrites the
local curated table with it.

Examples:
  backup restore conferences
  backup restore journals`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, kind, err := backupService(args[0])
		if err != nil {
			return err
		}
		return svc.RestoreBackup(context.Background(), kind)
	},
}

// backupRemoveCmd deletes a remote backup object.
var backupRemoveCmd = &cobra.Command{
	Use:   "remove <namespace>",
	Short: "Remove the remote backup of a curated table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, kind, err := backupService(args[0])
		if err != nil {
			return err
		}
		return svc.DeleteBackup(context.Background(), kind)
	},
}

func init() {
	backupCmd.AddCommand(backupRestoreCmd, backupRemoveCmd)
	RootCmd.AddCommand(backupCmd)
}

// backupService builds a service wired to the backup bucket and resolves
// the namespace argument.
func backupService(namespace string) (*venues.Service, venues.Kind, error) {
	kind, ok := venues.KindFromNamespace(namespace)
	if !ok {
		return nil, "", fmt.Errorf("unknown namespace %q (want conferences or journals)", namespace)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Storage.Enabled {
		return nil, "", fmt.Errorf("backup storage is disabled: set STORAGE_ENABLED=true")
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to backup storage: %w", err)
	}

	l.Info("Connected to backup storage", zap.String("bucket", cfg.Storage.Bucket))
	svc := venues.NewService(cfg.Venues, l).WithBackup(client, cfg.Storage.Bucket)
	return svc, kind, nil
}
