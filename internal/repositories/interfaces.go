package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type TestFilters struct {
	TestTypeID  *uint  `json:"test_type_id"`
	SkillTypeID *uint  `json:"skill_type_id"`
	Search      string `json:"search"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	SortBy      string `json:"sort_by"`    // "created_at", "title"
	SortOrder   string `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	TestID   *uint      `json:"test_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== AGGREGATE REPOSITORY =====

// Repository groups the per-entity repositories over one connection. Inside
// WithTransaction every repository handed to fn shares the same transaction.
type Repository interface {
	Test() TestRepository
	Attempt() AttemptRepository
	User() UserRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED STATISTICS STRUCTS =====

type TestAttemptStats struct {
	TestID        uint    `json:"test_id"`
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     int     `json:"best_score"`
}

// IsNotFoundError reports whether err means the requested row does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
