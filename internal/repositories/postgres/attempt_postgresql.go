package postgres

import (
	"context"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create inserts the attempt and its answers in one statement batch; the
// database assigns the attempt id and gorm fills in each answer's foreign key.
func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.TestAttempt) error {
	return a.db.WithContext(ctx).Omit("Test").Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	if err := a.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByIDWithAnswers(ctx context.Context, id uint) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	if err := a.db.WithContext(ctx).
		Preload("Test").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Answers.Question").
		Preload("Answers.Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) ([]*models.TestAttempt, int64, error) {
	var attempts []*models.TestAttempt
	var total int64

	// apply filter first
	query := a.db.WithContext(ctx).Model(&models.TestAttempt{}).Where("user_id = ?", userID)
	query = a.helpers.ApplyAttemptFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// newest first
	query = query.Order("submitted_at DESC").Order("id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Preload("Test").Preload("Test.TestType").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

func (a AttemptPostgreSQL) GetByTest(ctx context.Context, testID uint) ([]*models.TestAttempt, error) {
	var attempts []*models.TestAttempt
	if err := a.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("submitted_at ASC").
		Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (a AttemptPostgreSQL) CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(testIDs))
	if len(testIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TestID uint
		Count  int
	}
	if err := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Select("test_id, COUNT(*) AS count").
		Where("test_id IN ?", testIDs).
		Group("test_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TestID] = row.Count
	}
	return counts, nil
}

func (a AttemptPostgreSQL) CountAnswers(ctx context.Context, attemptID uint) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.UserAnswer{}).
		Where("test_attempt_id = ?", attemptID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (a AttemptPostgreSQL) GetTestStats(ctx context.Context, testID uint) (*repositories.TestAttemptStats, error) {
	stats := &repositories.TestAttemptStats{TestID: testID}

	if err := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Select("COUNT(*) AS total_attempts, COALESCE(AVG(score), 0) AS average_score, COALESCE(MAX(score), 0) AS best_score").
		Where("test_id = ?", testID).
		Scan(stats).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
