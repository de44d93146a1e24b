package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
	timeLayout   = "2006-01-02 15:04:05"
)

type exportService struct {
	repo   repositories.Repository
	logger *ServiceLogger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "export"}),
	}
}

// ExportTestResults renders every attempt on the test as an .xlsx workbook
// and returns it with a suggested file name.
func (s *exportService) ExportTestResults(ctx context.Context, testID uint, adminID uint) (data []byte, filename string, err error) {
	op := s.logger.WithOperation(ctx, "export_test_results", adminID)
	defer func() { op.LogResult(testID, "test", err) }()

	test, err := s.repo.Test().GetByID(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrTestNotFound
		}
		return nil, "", fmt.Errorf("failed to get test: %w", err)
	}

	attempts, err := s.repo.Attempt().GetByTest(ctx, testID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get test attempts: %w", err)
	}

	users, err := s.usersByID(ctx, attempts)
	if err != nil {
		return nil, "", err
	}

	stats, err := s.repo.Attempt().GetTestStats(ctx, testID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get test stats: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []interface{}{
		"Attempt ID", "User ID", "Email", "Full Name", "Score", "Total Points", "Percentage", "Submitted At",
	}
	if err = writeRow(f, resultsSheet, 1, headers); err != nil {
		return nil, "", err
	}

	for i, attempt := range attempts {
		row := []interface{}{attempt.ID, "", "", "", attempt.Score, attempt.TotalQuestions, percentage(attempt), attempt.SubmittedAt.Format(timeLayout)}
		if attempt.UserID != nil {
			row[1] = *attempt.UserID
			if user, ok := users[*attempt.UserID]; ok {
				row[2] = user.Email
				row[3] = user.FullName
			}
		}
		if err = writeRow(f, resultsSheet, i+2, row); err != nil {
			return nil, "", err
		}
	}

	if _, err = f.NewSheet(summarySheet); err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Test", test.Title},
		{"Attempts", stats.TotalAttempts},
		{"Average Score", stats.AverageScore},
		{"Best Score", stats.BestScore},
		{"Total Points", test.TotalQuestions},
	}
	for i, row := range summary {
		if err = writeRow(f, summarySheet, i+1, row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	op.LogAudit(AuditEventExport, testID, "test", map[string]interface{}{"attempts": len(attempts)})

	return buf.Bytes(), fmt.Sprintf("test-%d-results.xlsx", testID), nil
}

func (s *exportService) usersByID(ctx context.Context, attempts []*models.TestAttempt) (map[uint]*models.User, error) {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, a := range attempts {
		if a.UserID == nil {
			continue
		}
		if _, ok := seen[*a.UserID]; !ok {
			seen[*a.UserID] = struct{}{}
			ids = append(ids, *a.UserID)
		}
	}

	users, err := s.repo.User().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("invalid cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func percentage(attempt *models.TestAttempt) float64 {
	if attempt.TotalQuestions == 0 {
		return 0
	}
	return float64(attempt.Score) * 100 / float64(attempt.TotalQuestions)
}
