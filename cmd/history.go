package cmd

import (
	"context"
	"fmt"

	"venue-manager/core/config"
	"venue-manager/core/history"
	"venue-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists recent merge runs from the audit database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent merge runs",
	Long:  `Lists the most recent persisted merge runs recorded in the history database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if !cfg.History.Enabled {
			return fmt.Errorf("history recording is disabled: set HISTORY_ENABLED=true")
		}

		db, err := history.Connect(cfg.History)
		if err != nil {
			return fmt.Errorf("failed to connect to history database: %w", err)
		}
		store, err := history.NewStore(db)
		if err != nil {
			return err
		}

		runs, err := store.Recent(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to query merge history: %w", err)
		}

		if len(runs) == 0 {
			l.Info("No merge runs recorded yet.")
			return nil
		}

		for _, run := range runs {
			l.Info("Merge run",
				zap.String("run_id", run.RunID),
				zap.String("namespace", run.Namespace),
				zap.Int("total_keys", run.TotalKeys),
				zap.Int("new_keys", run.NewKeys),
				zap.Int("excluded", run.Excluded),
				zap.Bool("safe", run.Safe),
				zap.Time("created_at", run.CreatedAt),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
