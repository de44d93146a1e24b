package repositories

import (
	"context"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// AttemptRepository interface for submitted test attempts. Attempts are
// written once, together with their answers, and never updated.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.TestAttempt) error // Inserts attempt.Answers too
	GetByID(ctx context.Context, id uint) (*models.TestAttempt, error)
	GetByIDWithAnswers(ctx context.Context, id uint) (*models.TestAttempt, error) // Include test, answers, questions, options

	// Query operations
	GetByUser(ctx context.Context, userID uint, filters AttemptFilters) ([]*models.TestAttempt, int64, error)
	GetByTest(ctx context.Context, testID uint) ([]*models.TestAttempt, error)
	CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error)
	CountAnswers(ctx context.Context, attemptID uint) (int64, error)
	GetTestStats(ctx context.Context, testID uint) (*TestAttemptStats, error)
}
