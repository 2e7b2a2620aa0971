package cmd

import (
	"fmt"

	"venue-manager/core/config"
	"venue-manager/core/logger"
	"venue-manager/core/table"
	"venue-manager/core/utils"
	"venue-manager/feature/venues"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd checks a flat venue table for violations.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a flat venue table file",
	Long: `Validate a flat acronym-to-name table: abbreviated name lists must not
be longer than full name lists, names must be globally unique, and no two
acronyms may refer to the same venue under a normalized comparison.

Exits with an error when violations are found.

Examples:
  validate data/conferences.json
  validate data/journals.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	path := utils.ExpandPath(args[0])
	t := table.Load(path, l)

	clean, diags, ok := venues.Validate(t)

	for _, d := range diags {
		l.Warn("Violation",
			zap.String("kind", string(d.Kind)),
			zap.String("acronym", d.Acronym),
			zap.String("other", d.Other),
			zap.String("field", d.Field),
			zap.Strings("values", d.Values),
		)
	}

	l.Info("Validation finished",
		zap.String("file", path),
		zap.Int("records", t.Len()),
		zap.Int("surviving", clean.Len()),
		zap.Int("violations", len(diags)),
	)

	if !ok {
		return fmt.Errorf("table has %d violation(s)", len(diags))
	}
	l.Info("Table is valid.")
	return nil
}
