package venues

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"venue-manager/core/history"
	"venue-manager/core/storage"
	"venue-manager/core/table"
	"venue-manager/core/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service orchestrates reconciliation runs and serves table lookups.
// Every run builds its tables from scratch; no record or validation state
// survives between invocations.
type Service struct {
	cfg    Config
	logger *zap.Logger

	historyStore *history.Store
	backupClient storage.Client
	backupBucket string
	bucketReady  bool
}

// NewService creates a reconciliation service.
func NewService(cfg Config, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// WithHistory enables merge-run auditing through the given store.
func (s *Service) WithHistory(store *history.Store) *Service {
	s.historyStore = store
	return s
}

// WithBackup enables remote backup of persisted tables.
func (s *Service) WithBackup(client storage.Client, bucket string) *Service {
	s.backupClient = client
	s.backupBucket = bucket
	return s
}

// RunOptions adjusts a single reconciliation run.
type RunOptions struct {
	// Bibliography overrides the configured bibliography source path.
	Bibliography string
}

// NamespaceReport summarizes the reconciliation of one namespace.
type NamespaceReport struct {
	// Kind is the entry kind processed.
	Kind Kind `json:"kind"`
	// Namespace is the storage namespace ("conferences" or "journals").
	Namespace string `json:"namespace"`
	// ExistingValid reports whether the curated table passed validation.
	ExistingValid bool `json:"existing_valid"`
	// ParsedValid reports whether the freshly extracted table passed.
	ParsedValid bool `json:"parsed_valid"`
	// NewKeys lists acronyms present only in the parsed table.
	NewKeys []string `json:"new_keys"`
	// Excluded lists new-tier keys dropped by post-merge validation.
	Excluded []string `json:"excluded"`
	// Diagnostics aggregates every finding of the run for this namespace.
	Diagnostics []Diagnostic `json:"diagnostics"`
	// Safe reports whether the merged table may be persisted.
	Safe bool `json:"safe"`
	// Persisted is set once Persist has written the merged table.
	Persisted bool `json:"persisted"`

	// Merged is the combined table awaiting persistence.
	Merged *table.Table `json:"-"`
}

// RunReport is the outcome of one full reconciliation run.
type RunReport struct {
	// RunID uniquely identifies the run across logs and history rows.
	RunID string `json:"run_id"`
	// Namespaces holds one report per processed namespace.
	Namespaces []NamespaceReport `json:"namespaces"`
	// Safe is true iff every namespace merge is safe to persist.
	Safe bool `json:"safe"`
	// Persisted is set once Persist has completed.
	Persisted bool `json:"persisted"`
}

// Run executes the full pipeline for both namespaces without touching
// storage: extract, validate existing and parsed tables, diff, and merge.
// Use Persist to write the result.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	runID := uuid.NewString()
	l := s.logger.With(zap.String("run_id", runID))

	bibPath := opts.Bibliography
	if bibPath == "" {
		bibPath = s.cfg.Bibliography
	}
	bibPath = utils.ExpandPath(bibPath)

	var content string
	if bibPath == "" {
		l.Warn("No bibliography source configured, extracting nothing")
	} else if data, err := os.ReadFile(bibPath); err != nil {
		l.Warn("Bibliography source not readable, extracting nothing",
			zap.String("path", bibPath),
			zap.Error(err),
		)
	} else {
		content = string(data)
	}

	report := &RunReport{RunID: runID, Safe: true}
	for _, kind := range Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ns, err := s.runNamespace(l, content, kind)
		if err != nil {
			return nil, err
		}
		report.Namespaces = append(report.Namespaces, *ns)
		report.Safe = report.Safe && ns.Safe
	}
	return report, nil
}

// runNamespace reconciles one namespace end to end.
func (s *Service) runNamespace(l *zap.Logger, content string, kind Kind) (*NamespaceReport, error) {
	l = l.With(zap.String("namespace", kind.Namespace()))

	existing := table.Load(utils.ExpandPath(s.cfg.DefaultPath(kind)), l)
	existing, existingDiags, existingOK := Validate(existing)

	parsed, err := Extract(content, kind)
	if err != nil {
		return nil, err
	}
	parsed, parsedDiags, parsedOK := Validate(parsed)

	newOnly, reviewDiags := Diff(existing, parsed)

	user := s.loadUserTable(l, kind)
	res := Merge(existing, user, newOnly)

	l.Info("Namespace reconciled",
		zap.Int("existing", existing.Len()),
		zap.Int("parsed", parsed.Len()),
		zap.Int("new", newOnly.Len()),
		zap.Int("excluded", len(res.Excluded)),
		zap.Bool("safe", res.Safe),
	)

	return &NamespaceReport{
		Kind:          kind,
		Namespace:     kind.Namespace(),
		ExistingValid: existingOK,
		ParsedValid:   parsedOK,
		NewKeys:       newOnly.Keys(),
		Excluded:      res.Excluded,
		Diagnostics:   append(append(append(slices.Clone(existingDiags), parsedDiags...), reviewDiags...), res.Diags...),
		Safe:          res.Safe,
		Merged:        res.Table,
	}, nil
}

// loadUserTable reads and flattens the nested user override for a kind.
// Missing or malformed files degrade to an empty table with a diagnostic.
func (s *Service) loadUserTable(l *zap.Logger, kind Kind) *table.Table {
	path := utils.ExpandPath(s.cfg.UserPath(kind))
	if path == "" {
		return table.New()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		l.Warn("User table not readable, treating as empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return table.New()
	}
	flat, err := table.FlattenUserSource(raw, kind.UserSections())
	if err != nil {
		l.Warn("User table malformed, treating as empty",
			zap.String("path", path),
			zap.Error(err),
		)
		return table.New()
	}
	return flat
}

// Persist writes every merged namespace table from the report, records the
// run in the history store, and uploads remote backups when configured.
// It refuses to persist a run whose merge was not safe. Write failures
// leave previously persisted tables untouched.
func (s *Service) Persist(ctx context.Context, report *RunReport) error {
	if !report.Safe {
		return fmt.Errorf("merge is not safe to persist: resolve reported violations first")
	}

	l := s.logger.With(zap.String("run_id", report.RunID))
	for i := range report.Namespaces {
		ns := &report.Namespaces[i]
		path := utils.ExpandPath(s.cfg.DefaultPath(ns.Kind))
		if err := table.Save(ns.Merged, path); err != nil {
			return fmt.Errorf("failed to persist %s table: %w", ns.Namespace, err)
		}
		ns.Persisted = true
		l.Info("Persisted merged table",
			zap.String("namespace", ns.Namespace),
			zap.Int("records", ns.Merged.Len()),
		)

		// History and backup failures are reported but do not undo a
		// successful local persist.
		if s.historyStore != nil {
			run := history.MergeRun{
				RunID:     report.RunID,
				Namespace: ns.Namespace,
				TotalKeys: ns.Merged.Len(),
				NewKeys:   len(ns.NewKeys),
				Excluded:  len(ns.Excluded),
				Safe:      ns.Safe,
			}
			if err := s.historyStore.Record(ctx, run); err != nil {
				l.Warn("Failed to record merge history", zap.Error(err))
			}
		}
		if s.backupClient != nil {
			if err := s.uploadBackup(ctx, ns); err != nil {
				l.Warn("Failed to upload table backup",
					zap.String("namespace", ns.Namespace),
					zap.Error(err),
				)
			}
		}
	}
	report.Persisted = true
	return nil
}

// uploadBackup pushes one merged table to the backup bucket.
func (s *Service) uploadBackup(ctx context.Context, ns *NamespaceReport) error {
	if err := s.ensureBackupBucket(ctx); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ns.Merged, "", "    ")
	if err != nil {
		return err
	}
	_, err = s.backupClient.PutObject(ctx, s.backupBucket, backupObject(ns.Namespace),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	return err
}

// ensureBackupBucket creates the backup bucket on first use.
func (s *Service) ensureBackupBucket(ctx context.Context) error {
	if s.bucketReady {
		return nil
	}
	exists, err := s.backupClient.BucketExists(ctx, s.backupBucket)
	if err != nil {
		return fmt.Errorf("failed to check backup bucket: %w", err)
	}
	if !exists {
		if err := s.backupClient.MakeBucket(ctx, s.backupBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create backup bucket: %w", err)
		}
	}
	s.bucketReady = true
	return nil
}

// backupObject returns the bucket object name holding one namespace table.
func backupObject(namespace string) string {
	return "tables/" + namespace + ".json"
}

// RestoreBackup downloads the remote backup of a namespace table and
// writes it over the curated table on disk. The payload must parse as a
// flat acronym table; a corrupt backup leaves the local file untouched.
func (s *Service) RestoreBackup(ctx context.Context, kind Kind) error {
	if s.backupClient == nil {
		return fmt.Errorf("backup storage is not configured")
	}
	if !kind.Valid() {
		return fmt.Errorf("unsupported entry kind %q", kind)
	}

	obj, err := s.backupClient.GetObject(ctx, s.backupBucket, backupObject(kind.Namespace()), minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to download backup: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	t := table.New()
	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("backup is not a valid table: %w", err)
	}

	path := utils.ExpandPath(s.cfg.DefaultPath(kind))
	if err := table.Save(t, path); err != nil {
		return fmt.Errorf("failed to restore %s table: %w", kind.Namespace(), err)
	}
	s.logger.Info("Restored table from backup",
		zap.String("namespace", kind.Namespace()),
		zap.Int("records", t.Len()),
	)
	return nil
}

// DeleteBackup removes the remote backup of a namespace table.
func (s *Service) DeleteBackup(ctx context.Context, kind Kind) error {
	if s.backupClient == nil {
		return fmt.Errorf("backup storage is not configured")
	}
	if !kind.Valid() {
		return fmt.Errorf("unsupported entry kind %q", kind)
	}
	if err := s.backupClient.RemoveObject(ctx, s.backupBucket, backupObject(kind.Namespace()), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove backup: %w", err)
	}
	s.logger.Info("Removed table backup", zap.String("namespace", kind.Namespace()))
	return nil
}

// Table returns the merged default + user table for a kind, the user tier
// taking priority. Tables are loaded fresh on every call so serving never
// reuses reconciliation state.
func (s *Service) Table(kind Kind) (*table.Table, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported entry kind %q", kind)
	}
	def := table.Load(utils.ExpandPath(s.cfg.DefaultPath(kind)), s.logger)
	user := s.loadUserTable(s.logger, kind)
	return overlay(def, user), nil
}

// Resolve finds the acronym under which the given name (full or
// abbreviated) is registered, using the validator's normalization rules.
func (s *Service) Resolve(kind Kind, name string) (string, bool, error) {
	t, err := s.Table(kind)
	if err != nil {
		return "", false, err
	}
	want := normalizeName(name)
	for _, key := range t.Keys() {
		rec, _ := t.Get(key)
		if slices.Contains(normalizeNames(rec.FullNames), want) ||
			slices.Contains(normalizeNames(rec.AbbrNames), want) {
			return key, true, nil
		}
	}
	return "", false, nil
}
