package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"gorm.io/gorm"
)

type TestPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create inserts the test with its passages, listening parts, groups, questions and options.
func (t *TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Omit("TestType", "SkillType", "AudioFile").Create(test).Error
}

func (t *TestPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).
		Preload("TestType").
		Preload("SkillType").
		Preload("AudioFile").
		First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (t *TestPostgreSQL) GetWithQuestions(ctx context.Context, id uint) (*models.Test, error) {
	byDisplayOrder := func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }
	byQuestionNumber := func(db *gorm.DB) *gorm.DB { return db.Order("question_number ASC, id ASC") }

	var test models.Test
	if err := t.db.WithContext(ctx).
		Preload("TestType").
		Preload("SkillType").
		Preload("AudioFile").
		Preload("Passages", byDisplayOrder).
		Preload("Passages.Questions", byQuestionNumber).
		Preload("Passages.Questions.Options", byDisplayOrder).
		Preload("ListeningParts", func(db *gorm.DB) *gorm.DB { return db.Order("part_number ASC, id ASC") }).
		Preload("ListeningParts.QuestionGroups", byDisplayOrder).
		Preload("ListeningParts.QuestionGroups.Questions", byQuestionNumber).
		Preload("ListeningParts.QuestionGroups.Questions.Options", byDisplayOrder).
		First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

// Update overwrites the test's own columns and replaces its whole structure.
func (t *TestPostgreSQL) Update(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Test{ID: test.ID}).Updates(map[string]any{
			"title":            test.Title,
			"description":      test.Description,
			"duration_minutes": test.DurationMinutes,
			"total_questions":  test.TotalQuestions,
			"test_type_id":     test.TestTypeID,
			"skill_type_id":    test.SkillTypeID,
			"audio_file_id":    test.AudioFileID,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update test: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := deleteStructure(tx, test.ID); err != nil {
			return err
		}

		for i := range test.Passages {
			test.Passages[i].ID = 0
			test.Passages[i].TestID = test.ID
		}
		for i := range test.ListeningParts {
			test.ListeningParts[i].ID = 0
			test.ListeningParts[i].TestID = test.ID
		}

		if len(test.Passages) > 0 {
			if err := tx.Create(&test.Passages).Error; err != nil {
				return fmt.Errorf("failed to create passages: %w", err)
			}
		}
		if len(test.ListeningParts) > 0 {
			if err := tx.Create(&test.ListeningParts).Error; err != nil {
				return fmt.Errorf("failed to create listening parts: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the test together with its structure and every attempt on it.
func (t *TestPostgreSQL) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Model(&models.TestAttempt{}).Select("id").Where("test_id = ?", id)
		if err := tx.Where("test_attempt_id IN (?)", attemptIDs).Delete(&models.UserAnswer{}).Error; err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		if err := tx.Where("test_id = ?", id).Delete(&models.TestAttempt{}).Error; err != nil {
			return fmt.Errorf("failed to delete attempts: %w", err)
		}
		if err := deleteStructure(tx, id); err != nil {
			return err
		}

		result := tx.Delete(&models.Test{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete test: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// deleteStructure removes passages, listening parts, groups, questions and
// options of a test, children first.
func deleteStructure(tx *gorm.DB, testID uint) error {
	passageIDs := tx.Model(&models.Passage{}).Select("id").Where("test_id = ?", testID)
	partIDs := tx.Model(&models.ListeningPart{}).Select("id").Where("test_id = ?", testID)
	groupIDs := tx.Model(&models.QuestionGroup{}).Select("id").Where("part_id IN (?)", partIDs)
	questionIDs := tx.Model(&models.Question{}).Select("id").
		Where("passage_id IN (?) OR question_group_id IN (?)", passageIDs, groupIDs)

	steps := []struct {
		name  string
		query *gorm.DB
		model any
	}{
		{"options", tx.Where("question_id IN (?)", questionIDs), &models.QuestionOption{}},
		{"questions", tx.Where("passage_id IN (?) OR question_group_id IN (?)", passageIDs, groupIDs), &models.Question{}},
		{"question groups", tx.Where("part_id IN (?)", partIDs), &models.QuestionGroup{}},
		{"listening parts", tx.Where("test_id = ?", testID), &models.ListeningPart{}},
		{"passages", tx.Where("test_id = ?", testID), &models.Passage{}},
	}

	for _, step := range steps {
		if err := step.query.Delete(step.model).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.name, err)
		}
	}
	return nil
}

func (t *TestPostgreSQL) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, int64, error) {
	var tests []*models.Test
	var total int64

	// apply filter first
	query := t.db.WithContext(ctx).Model(&models.Test{})
	query = t.helpers.ApplyTestFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = t.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		"id", "created_at", "title")

	if err := query.Preload("TestType").Preload("SkillType").Find(&tests).Error; err != nil {
		return nil, 0, err
	}

	return tests, total, nil
}

func (t *TestPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := t.db.WithContext(ctx).Model(&models.Test{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *TestPostgreSQL) GetTestType(ctx context.Context, id uint) (*models.TestType, error) {
	var testType models.TestType
	if err := t.db.WithContext(ctx).First(&testType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &testType, nil
}

func (t *TestPostgreSQL) GetSkillType(ctx context.Context, id uint) (*models.SkillType, error) {
	var skillType models.SkillType
	if err := t.db.WithContext(ctx).First(&skillType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &skillType, nil
}
