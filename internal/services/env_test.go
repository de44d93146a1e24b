package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/online-test-service/internal/events"
	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/online-test-service/internal/testutil"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
)

// testEnv is a migrated in-memory database holding the sample test.
type testEnv struct {
	db        *gorm.DB
	repo      *postgres.Repository
	test      *models.Test
	reading   *models.TestType
	listening *models.TestType
	publisher *events.MockEventPublisher
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	reading, listening := testutil.SeedTypes(t, db)
	repo := postgres.NewRepository(db)

	test := testutil.SampleTest(reading.ID)
	require.NoError(t, repo.Test().Create(context.Background(), test))

	return &testEnv{
		db:        db,
		repo:      repo,
		test:      test,
		reading:   reading,
		listening: listening,
		publisher: events.NewMockEventPublisher(discardLogger()),
		validator: validator.New(),
	}
}

// questionID returns the stored id of the sample question with the given number.
func (e *testEnv) questionID(t *testing.T, number int) uint {
	t.Helper()
	for _, q := range e.test.Questions() {
		if q.QuestionNumber == number {
			return q.ID
		}
	}
	t.Fatalf("no question %d in sample test", number)
	return 0
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Student " + email, Email: email, PasswordHash: "x", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, e.repo.User().Create(context.Background(), user))
	return user
}

func (e *testEnv) countAttempts(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.TestAttempt{}).Count(&count).Error)
	return count
}

func (e *testEnv) countAnswers(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.UserAnswer{}).Count(&count).Error)
	return count
}
