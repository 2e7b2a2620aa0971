package table

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Load reads a flat acronym table from path. A missing file or malformed
// JSON yields an empty table with a logged diagnostic; it never fails to
// the caller.
func Load(path string, l *zap.Logger) *Table {
	data, err := os.ReadFile(path)
	if err != nil {
		l.Warn("Table file not readable, starting empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return New()
	}

	t := New()
	if err := json.Unmarshal(data, t); err != nil {
		l.Warn("Table file malformed, starting empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return New()
	}
	return t
}

// Save writes the table to path as sorted-key, indented JSON.
// The write is atomic: data goes to a temporary file in the same
// directory which is renamed over the destination, so a failure leaves
// any previously persisted table untouched.
func Save(t *Table, path string) error {
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace table file: %w", err)
	}
	return nil
}
