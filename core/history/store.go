package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MergeRun is one persisted namespace merge.
type MergeRun struct {
	// ID is the row primary key.
	ID uint `gorm:"primaryKey" json:"id"`
	// RunID ties the row to one reconciliation run.
	RunID string `gorm:"size:36;index" json:"run_id"`
	// Namespace is "conferences" or "journals".
	Namespace string `gorm:"size:16" json:"namespace"`
	// TotalKeys counts the records in the persisted table.
	TotalKeys int `json:"total_keys"`
	// NewKeys counts the acronyms contributed by the parsed tier.
	NewKeys int `json:"new_keys"`
	// Excluded counts new-tier keys dropped by post-merge validation.
	Excluded int `json:"excluded"`
	// Safe records the merge safety verdict.
	Safe bool `json:"safe"`
	// CreatedAt is set by GORM on insert.
	CreatedAt time.Time `json:"created_at"`
}

// Store records and queries merge runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates the store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&MergeRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate merge history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one merge-run row.
func (s *Store) Record(ctx context.Context, run MergeRun) error {
	return s.db.WithContext(ctx).Create(&run).Error
}

// Recent returns the most recent merge runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]MergeRun, error) {
	var runs []MergeRun
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
