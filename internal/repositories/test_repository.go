package repositories

import (
	"context"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// TestRepository interface for test content operations
type TestRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, test *models.Test) error
	GetByID(ctx context.Context, id uint) (*models.Test, error)
	GetWithQuestions(ctx context.Context, id uint) (*models.Test, error) // Include passages, parts, groups, questions, options
	Update(ctx context.Context, test *models.Test) error                 // Replaces passages and parts wholesale
	Delete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context, filters TestFilters) ([]*models.Test, int64, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Lookups
	GetTestType(ctx context.Context, id uint) (*models.TestType, error)
	GetSkillType(ctx context.Context, id uint) (*models.SkillType, error)
}
