package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"venue-manager/core/config"
	"venue-manager/core/logger"
	"venue-manager/core/utils"
	"venue-manager/feature/venues"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractBibliography string

// extractCmd parses a BibLaTeX source and prints the extracted table.
var extractCmd = &cobra.Command{
	Use:   "extract <kind>",
	Short: "Extract venue name pairs from a BibLaTeX source",
	Long: `Extract acronym-to-name pairs of one entry kind from a BibLaTeX source
and print the resulting table as JSON.

Kinds: article (journals), inproceedings (conferences).

Examples:
  extract article --bib library.bib
  extract inproceedings --bib library.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractBibliography, "bib", "", "BibLaTeX source to parse (overrides configuration)")
	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	kind := venues.Kind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("unsupported entry kind %q (want article or inproceedings)", args[0])
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	bibPath := extractBibliography
	if bibPath == "" {
		bibPath = cfg.Venues.Bibliography
	}
	if bibPath == "" {
		return fmt.Errorf("no bibliography source: pass --bib or configure venues.bibliography")
	}

	data, err := os.ReadFile(utils.ExpandPath(bibPath))
	if err != nil {
		return fmt.Errorf("failed to read bibliography: %w", err)
	}

	t, err := venues.Extract(string(data), kind)
	if err != nil {
		return err
	}

	l.Info("Extraction finished",
		zap.String("namespace", kind.Namespace()),
		zap.Int("records", t.Len()),
	)

	out, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
