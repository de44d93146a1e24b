package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/services"
)

type MockSubmissionService struct{ mock.Mock }

func (m *MockSubmissionService) Submit(ctx context.Context, testID uint, userID uint, req *services.SubmitTestRequest) (*services.SubmitTestResponse, error) {
	args := m.Called(ctx, testID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitTestResponse), args.Error(1)
}

type MockResultService struct{ mock.Mock }

func (m *MockResultService) GetTestResult(ctx context.Context, attemptID uint) (*services.TestResultResponse, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TestResultResponse), args.Error(1)
}

func (m *MockResultService) GetMyHistory(ctx context.Context, userID uint) ([]services.HistoryItemResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.HistoryItemResponse), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) ListTests(ctx context.Context, filters repositories.TestFilters) ([]services.TestSummaryResponse, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]services.TestSummaryResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogService) GetTestDetails(ctx context.Context, testID uint) (*services.TestDetailsResponse, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TestDetailsResponse), args.Error(1)
}

func (m *MockCatalogService) GetListeningTestDetails(ctx context.Context, testID uint) (*services.ListeningTestDetailsResponse, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ListeningTestDetailsResponse), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) CreateTest(ctx context.Context, req *services.TestRequest, adminID uint) (*services.AdminTestResponse, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminTestResponse), args.Error(1)
}

func (m *MockAdminService) UpdateTest(ctx context.Context, testID uint, req *services.TestRequest, adminID uint) (*services.AdminTestResponse, error) {
	args := m.Called(ctx, testID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminTestResponse), args.Error(1)
}

func (m *MockAdminService) DeleteTest(ctx context.Context, testID uint, adminID uint) error {
	return m.Called(ctx, testID, adminID).Error(0)
}

func (m *MockAdminService) GetTestForEdit(ctx context.Context, testID uint) (*services.AdminTestResponse, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminTestResponse), args.Error(1)
}

func (m *MockAdminService) ListTestsForAdmin(ctx context.Context, filters repositories.TestFilters) ([]services.TestSummaryResponse, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]services.TestSummaryResponse), args.Get(1).(int64), args.Error(2)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) ExportTestResults(ctx context.Context, testID uint, adminID uint) ([]byte, string, error) {
	args := m.Called(ctx, testID, adminID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResponse), args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, req *services.GoogleLoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResponse), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*services.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserResponse), args.Error(1)
}

// mockServiceManager hands out the mocks above
type mockServiceManager struct {
	submission *MockSubmissionService
	result     *MockResultService
	catalog    *MockCatalogService
	admin      *MockAdminService
	export     *MockExportService
	auth       *MockAuthService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		submission: &MockSubmissionService{},
		result:     &MockResultService{},
		catalog:    &MockCatalogService{},
		admin:      &MockAdminService{},
		export:     &MockExportService{},
		auth:       &MockAuthService{},
	}
}

func (m *mockServiceManager) Submission() services.SubmissionService { return m.submission }
func (m *mockServiceManager) Result() services.ResultService         { return m.result }
func (m *mockServiceManager) Catalog() services.CatalogService       { return m.catalog }
func (m *mockServiceManager) Admin() services.AdminService           { return m.admin }
func (m *mockServiceManager) Export() services.ExportService         { return m.export }
func (m *mockServiceManager) Auth() services.AuthService             { return m.auth }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
