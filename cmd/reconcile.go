package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"venue-manager/core/config"
	"venue-manager/core/history"
	"venue-manager/core/logger"
	"venue-manager/core/storage"
	"venue-manager/feature/venues"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	saveTables   bool
	dryRunMerge  bool
	yesConfirm   bool
	bibliography string
)

// reconcileCmd reconciles the venue tables against a bibliography source.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile venue tables against a bibliography source (report + optionally save)",
	Long: `Reconcile the curated venue tables, user overrides, and names parsed
from a BibLaTeX source.

Reports new acronyms, validation findings, and whether the merged tables
are safe to persist. Optionally save the merged tables back to disk.

Examples:
  # Report only
  reconcile --bib library.bib

  # Save merged tables (with interactive confirmation)
  reconcile --bib library.bib --save

  # Save with auto-confirm (non-interactive)
  reconcile --bib library.bib --save --yes

  # Force dry-run (no writes even with --yes)
  reconcile --bib library.bib --save --dry-run`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&saveTables, "save", false, "Persist merged tables after a safe reconciliation")
	reconcileCmd.Flags().BoolVar(&dryRunMerge, "dry-run", false, "Force dry-run (no writes even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm persistence (non-interactive)")
	reconcileCmd.Flags().StringVar(&bibliography, "bib", "", "BibLaTeX source to parse (overrides configuration)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting venue reconciliation")

	svc := venues.NewService(cfg.Venues, l)

	// Connect optional merge-history database
	if cfg.History.Enabled {
		db, err := history.Connect(cfg.History)
		if err != nil {
			l.Warn("Optional history database connection failed", zap.Error(err))
		} else if store, err := history.NewStore(db); err != nil {
			l.Warn("Failed to initialize merge history store", zap.Error(err))
		} else {
			svc.WithHistory(store)
		}
	}

	// Connect optional backup storage
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Warn("Optional backup storage connection failed", zap.Error(err))
		} else {
			svc.WithBackup(client, cfg.Storage.Bucket)
		}
	}

	// Step 1: Run the pipeline (always side-effect free)
	report, err := svc.Run(ctx, venues.RunOptions{Bibliography: bibliography})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	// Step 2: Print report
	printRunReport(l, report)

	// Step 3: Check if persistence is requested
	if !saveTables {
		l.Info("No save requested. Use --save to persist the merged tables.")
		return nil
	}

	if dryRunMerge {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !report.Safe {
		return fmt.Errorf("merged tables are not safe to persist: resolve the reported violations first")
	}

	// Step 4: Confirm and persist
	if !confirmPersist() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	if err := svc.Persist(ctx, report); err != nil {
		return fmt.Errorf("failed to persist merged tables: %w", err)
	}

	l.Info("Successfully persisted merged tables", zap.String("run_id", report.RunID))
	return nil
}

// printRunReport prints a formatted reconciliation report using logger.
func printRunReport(l *zap.Logger, report *venues.RunReport) {
	for _, ns := range report.Namespaces {
		l.Info("Namespace report",
			zap.String("namespace", ns.Namespace),
			zap.Bool("existing_valid", ns.ExistingValid),
			zap.Bool("parsed_valid", ns.ParsedValid),
			zap.Int("new_keys", len(ns.NewKeys)),
			zap.Int("excluded", len(ns.Excluded)),
			zap.Bool("safe", ns.Safe),
		)

		if len(ns.NewKeys) > 0 {
			l.Info("New acronyms", zap.Strings("keys", ns.NewKeys))
		}
		if len(ns.Excluded) > 0 {
			l.Warn("Excluded after merge validation", zap.Strings("keys", ns.Excluded))
		}

		// Show sample of diagnostics (max 5 for logger)
		maxShow := 5
		if len(ns.Diagnostics) < maxShow {
			maxShow = len(ns.Diagnostics)
		}
		for i := 0; i < maxShow; i++ {
			d := ns.Diagnostics[i]
			l.Warn("Diagnostic",
				zap.String("kind", string(d.Kind)),
				zap.String("acronym", d.Acronym),
				zap.String("other", d.Other),
				zap.String("field", d.Field),
				zap.Strings("values", d.Values),
			)
		}
		if len(ns.Diagnostics) > maxShow {
			l.Warn("Additional diagnostics not shown", zap.Int("count", len(ns.Diagnostics)-maxShow))
		}
	}

	l.Info("Reconciliation report",
		zap.String("run_id", report.RunID),
		zap.Bool("safe", report.Safe),
	)
}

// confirmPersist prompts the user for confirmation or uses the --yes flag.
func confirmPersist() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to overwrite the curated tables: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
