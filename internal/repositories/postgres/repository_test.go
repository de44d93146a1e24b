package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/online-test-service/internal/testutil"
)

func setup(t *testing.T) (*postgres.Repository, *models.Test) {
	t.Helper()

	db := testutil.NewDB(t)
	reading, _ := testutil.SeedTypes(t, db)
	repo := postgres.NewRepository(db)

	test := testutil.SampleTest(reading.ID)
	require.NoError(t, repo.Test().Create(context.Background(), test))
	return repo, test
}

func TestTestPostgreSQL_GetWithQuestions(t *testing.T) {
	repo, created := setup(t)

	test, err := repo.Test().GetWithQuestions(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Reading", test.TestType.Name)
	require.Len(t, test.Passages, 1)
	require.Len(t, test.Passages[0].Questions, 4)
	assert.Equal(t, 1, test.Passages[0].Questions[0].QuestionNumber)
	assert.Equal(t, "B", test.Passages[0].Questions[1].Options[1].OptionLabel)
	require.Len(t, test.ListeningParts, 1)
	require.Len(t, test.ListeningParts[0].QuestionGroups, 1)
	assert.Len(t, test.ListeningParts[0].QuestionGroups[0].Questions[0].Options, 3)

	assert.Len(t, test.Questions(), 5)
	assert.Equal(t, 4, test.CountGradable())
}

func TestTestPostgreSQL_GetByIDNotFound(t *testing.T) {
	repo, _ := setup(t)

	_, err := repo.Test().GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTestPostgreSQL_UpdateReplacesStructure(t *testing.T) {
	repo, created := setup(t)
	ctx := context.Background()

	replacement := &models.Test{
		ID:              created.ID,
		Title:           "Renamed",
		DurationMinutes: 30,
		TotalQuestions:  1,
		TestTypeID:      created.TestTypeID,
		Passages: []models.Passage{{
			Title: "Only passage",
			Questions: []models.Question{{
				QuestionNumber: 1,
				QuestionType:   models.QuestionFillBlank,
				CorrectAnswers: datatypes.JSON(`{"answer":"x"}`),
			}},
		}},
	}
	require.NoError(t, repo.Test().Update(ctx, replacement))

	test, err := repo.Test().GetWithQuestions(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", test.Title)
	assert.Len(t, test.Passages, 1)
	assert.Empty(t, test.ListeningParts)
	assert.Len(t, test.Questions(), 1)

	missing := &models.Test{ID: 999, Title: "x", TestTypeID: created.TestTypeID}
	assert.ErrorIs(t, repo.Test().Update(ctx, missing), gorm.ErrRecordNotFound)
}

func TestTestPostgreSQL_ListAndDelete(t *testing.T) {
	repo, created := setup(t)
	ctx := context.Background()

	tests, total, err := repo.Test().List(ctx, repositories.TestFilters{Search: "READING"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tests, 1)
	assert.Equal(t, "Reading", tests[0].TestType.Name)

	attempt := &models.TestAttempt{TestID: created.ID, SubmittedAt: time.Now()}
	require.NoError(t, repo.Attempt().Create(ctx, attempt))

	require.NoError(t, repo.Test().Delete(ctx, created.ID))
	exists, err := repo.Test().ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Attempt().GetByID(ctx, attempt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Test().Delete(ctx, created.ID), gorm.ErrRecordNotFound)
}

func TestAttemptPostgreSQL_CreateWithAnswers(t *testing.T) {
	repo, created := setup(t)
	ctx := context.Background()
	userID := uint(7)

	questions := created.Questions()
	attempt := &models.TestAttempt{
		TestID:         created.ID,
		UserID:         &userID,
		Score:          1,
		TotalQuestions: 5,
		SubmittedAt:    time.Now(),
		Answers: []models.UserAnswer{
			{QuestionID: questions[0].ID, Answer: datatypes.JSON(`"Paris"`), IsCorrect: true},
			{QuestionID: questions[1].ID, Answer: datatypes.JSON(`""`)},
		},
	}
	require.NoError(t, repo.Attempt().Create(ctx, attempt))
	require.NotZero(t, attempt.ID)

	count, err := repo.Attempt().CountAnswers(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	loaded, err := repo.Attempt().GetByIDWithAnswers(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, loaded.Test.Title)
	require.Len(t, loaded.Answers, 2)
	assert.JSONEq(t, `"Paris"`, string(loaded.Answers[0].Answer))

	history, total, err := repo.Attempt().GetByUser(ctx, userID, repositories.AttemptFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Reading", history[0].Test.TestType.Name)

	counts, err := repo.Attempt().CountByTests(ctx, []uint{created.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[created.ID])
	assert.Zero(t, counts[999])

	stats, err := repo.Attempt().GetTestStats(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 1, stats.BestScore)
}

func TestRepository_WithTransactionRollsBack(t *testing.T) {
	repo, created := setup(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		attempt := &models.TestAttempt{TestID: created.ID, SubmittedAt: time.Now()}
		if err := tx.Attempt().Create(ctx, attempt); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	attempts, err := repo.Attempt().GetByTest(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestUserPostgreSQL(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	user := &models.User{FullName: "Ann", Email: " Ann@Example.com ", PasswordHash: "hash", Role: models.RoleStudent}
	require.NoError(t, repo.User().Create(ctx, user))

	found, err := repo.User().GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	exists, err := repo.User().ExistsByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	missing, err := repo.User().GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.User().GetByIDs(ctx, []uint{user.ID, 9999})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ann@example.com", users[0].Email)

	now := time.Now()
	require.NoError(t, repo.User().UpdateLastLogin(ctx, user.ID, now))
	reloaded, err := repo.User().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
}
