package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// UserRepository interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Activity tracking
	UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error
}
