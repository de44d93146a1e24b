package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

// MockTestRepository is a mock implementation of TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Create(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) GetByID(ctx context.Context, id uint) (*models.Test, error) {
	args := m.Called(ctx, id)
	test, _ := args.Get(0).(*models.Test)
	return test, args.Error(1)
}

func (m *MockTestRepository) GetWithQuestions(ctx context.Context, id uint) (*models.Test, error) {
	args := m.Called(ctx, id)
	test, _ := args.Get(0).(*models.Test)
	return test, args.Error(1)
}

func (m *MockTestRepository) Update(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTestRepository) List(ctx context.Context, filters repositories.TestFilters) ([]*models.Test, int64, error) {
	args := m.Called(ctx, filters)
	tests, _ := args.Get(0).([]*models.Test)
	return tests, args.Get(1).(int64), args.Error(2)
}

func (m *MockTestRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTestRepository) GetTestType(ctx context.Context, id uint) (*models.TestType, error) {
	args := m.Called(ctx, id)
	tt, _ := args.Get(0).(*models.TestType)
	return tt, args.Error(1)
}

func (m *MockTestRepository) GetSkillType(ctx context.Context, id uint) (*models.SkillType, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*models.SkillType)
	return st, args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.TestAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uint) (*models.TestAttempt, error) {
	args := m.Called(ctx, id)
	attempt, _ := args.Get(0).(*models.TestAttempt)
	return attempt, args.Error(1)
}

func (m *MockAttemptRepository) GetByIDWithAnswers(ctx context.Context, id uint) (*models.TestAttempt, error) {
	args := m.Called(ctx, id)
	attempt, _ := args.Get(0).(*models.TestAttempt)
	return attempt, args.Error(1)
}

func (m *MockAttemptRepository) GetByUser(ctx context.Context, userID uint, filters repositories.AttemptFilters) ([]*models.TestAttempt, int64, error) {
	args := m.Called(ctx, userID, filters)
	attempts, _ := args.Get(0).([]*models.TestAttempt)
	return attempts, args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) GetByTest(ctx context.Context, testID uint) ([]*models.TestAttempt, error) {
	args := m.Called(ctx, testID)
	attempts, _ := args.Get(0).([]*models.TestAttempt)
	return attempts, args.Error(1)
}

func (m *MockAttemptRepository) CountByTests(ctx context.Context, testIDs []uint) (map[uint]int, error) {
	args := m.Called(ctx, testIDs)
	counts, _ := args.Get(0).(map[uint]int)
	return counts, args.Error(1)
}

func (m *MockAttemptRepository) CountAnswers(ctx context.Context, attemptID uint) (int64, error) {
	args := m.Called(ctx, attemptID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) GetTestStats(ctx context.Context, testID uint) (*repositories.TestAttemptStats, error) {
	args := m.Called(ctx, testID)
	stats, _ := args.Get(0).(*repositories.TestAttemptStats)
	return stats, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error {
	args := m.Called(ctx, id, loginTime)
	return args.Error(0)
}

// MockRepository is a mock implementation of the main Repository interface.
// WithTransaction runs fn against the same mocks.
type MockRepository struct {
	mock.Mock
	testRepo    *MockTestRepository
	attemptRepo *MockAttemptRepository
	userRepo    *MockUserRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		testRepo:    &MockTestRepository{},
		attemptRepo: &MockAttemptRepository{},
		userRepo:    &MockUserRepository{},
	}
}

func (m *MockRepository) Test() repositories.TestRepository       { return m.testRepo }
func (m *MockRepository) Attempt() repositories.AttemptRepository { return m.attemptRepo }
func (m *MockRepository) User() repositories.UserRepository       { return m.userRepo }
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.testRepo.AssertExpectations(t)
	m.attemptRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func uintPtr(v uint) *uint {
	return &v
}

func stringPtr(s string) *string {
	return &s
}
