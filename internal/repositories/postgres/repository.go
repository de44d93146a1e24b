package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the gorm-backed aggregate of all repositories.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Test() repositories.TestRepository       { return NewTestPostgreSQL(r.db) }
func (r *Repository) Attempt() repositories.AttemptRepository { return NewAttemptPostgreSQL(r.db) }
func (r *Repository) User() repositories.UserRepository       { return NewUserPostgreSQL(r.db) }

// WithTransaction runs fn in a database transaction. Returning an error, or a
// cancelled context, rolls everything back.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.TestType{},
		&models.SkillType{},
		&models.AudioFile{},
		&models.User{},
		&models.Test{},
		&models.Passage{},
		&models.ListeningPart{},
		&models.QuestionGroup{},
		&models.Question{},
		&models.QuestionOption{},
		&models.TestAttempt{},
		&models.UserAnswer{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
