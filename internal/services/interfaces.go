package services

import (
	"context"

	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

// SubmissionService grades a whole submission and stores it atomically
type SubmissionService interface {
	Submit(ctx context.Context, testID uint, userID uint, req *SubmitTestRequest) (*SubmitTestResponse, error)
}

// ResultService reads submitted attempts back
type ResultService interface {
	GetTestResult(ctx context.Context, attemptID uint) (*TestResultResponse, error)
	GetMyHistory(ctx context.Context, userID uint) ([]HistoryItemResponse, error)
}

// CatalogService serves the candidate-facing read side of test content
type CatalogService interface {
	ListTests(ctx context.Context, filters repositories.TestFilters) ([]TestSummaryResponse, int64, error)
	GetTestDetails(ctx context.Context, testID uint) (*TestDetailsResponse, error)
	GetListeningTestDetails(ctx context.Context, testID uint) (*ListeningTestDetailsResponse, error)
}

// AdminService maintains test content. Callers are expected to be admins.
type AdminService interface {
	CreateTest(ctx context.Context, req *TestRequest, adminID uint) (*AdminTestResponse, error)
	UpdateTest(ctx context.Context, testID uint, req *TestRequest, adminID uint) (*AdminTestResponse, error)
	DeleteTest(ctx context.Context, testID uint, adminID uint) error
	GetTestForEdit(ctx context.Context, testID uint) (*AdminTestResponse, error)
	ListTestsForAdmin(ctx context.Context, filters repositories.TestFilters) ([]TestSummaryResponse, int64, error)
}

// ExportService renders results as spreadsheets
type ExportService interface {
	ExportTestResults(ctx context.Context, testID uint, adminID uint) ([]byte, string, error)
}

// AuthService owns accounts and token issuance
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*UserResponse, error)
}
