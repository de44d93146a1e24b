package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SAP-F-2025/online-test-service/internal/cache"
	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

type resultService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *ServiceLogger
}

// NewResultService builds the result reader. cacheService may be nil, in
// which case every read goes to the database.
func NewResultService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) ResultService {
	return &resultService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "result"}),
	}
}

// GetTestResult returns the graded attempt with every answered question in
// question-number order. Attempts never change, so results are cached.
func (s *resultService) GetTestResult(ctx context.Context, attemptID uint) (resp *TestResultResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_test_result", 0)
	defer func() { op.LogResult(attemptID, "attempt", err) }()

	key := cache.ResultKey(attemptID)
	if cached := s.readCache(ctx, key); cached != nil {
		return cached, nil
	}

	attempt, err := s.repo.Attempt().GetByIDWithAnswers(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}

	resp = buildTestResult(attempt)

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, resp, s.cacheTTL); cacheErr != nil {
			s.logger.Logger().Warn("Failed to cache test result", "attempt_id", attemptID, "error", cacheErr)
		}
	}

	return resp, nil
}

func (s *resultService) readCache(ctx context.Context, key string) *TestResultResponse {
	if s.cache == nil {
		return nil
	}

	var cached TestResultResponse
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().Warn("Result cache unavailable, reading from database", "key", key, "error", err)
	}
	return nil
}

// GetMyHistory lists the user's attempts, newest first.
func (s *resultService) GetMyHistory(ctx context.Context, userID uint) (items []HistoryItemResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_my_history", userID)
	defer func() { op.LogResult(userID, "user", err) }()

	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	attempts, _, err := s.repo.Attempt().GetByUser(ctx, userID, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	items = make([]HistoryItemResponse, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, HistoryItemResponse{
			AttemptID:      a.ID,
			TestID:         a.TestID,
			TestTitle:      a.Test.Title,
			TestType:       a.Test.TestType.Name,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			SubmittedAt:    a.SubmittedAt,
		})
	}
	return items, nil
}

func buildTestResult(attempt *models.TestAttempt) *TestResultResponse {
	questions := make([]QuestionResultResponse, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		q := a.Question
		questions = append(questions, QuestionResultResponse{
			QuestionID:     q.ID,
			QuestionNumber: q.QuestionNumber,
			Prompt:         q.Prompt,
			QuestionType:   q.QuestionType,
			UserAnswer:     a.Answer,
			CorrectAnswer:  q.CorrectAnswers,
			IsCorrect:      a.IsCorrect,
			Options:        buildOptions(q.Options),
		})
	}

	slices.SortStableFunc(questions, func(a, b QuestionResultResponse) int {
		return cmp.Compare(a.QuestionNumber, b.QuestionNumber)
	})

	return &TestResultResponse{
		AttemptID:      attempt.ID,
		TestID:         attempt.TestID,
		TestTitle:      attempt.Test.Title,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		SubmittedAt:    attempt.SubmittedAt,
		Questions:      questions,
	}
}

func buildOptions(options []models.QuestionOption) []OptionResponse {
	result := make([]OptionResponse, 0, len(options))
	for _, o := range options {
		result = append(result, OptionResponse{
			ID:          o.ID,
			OptionLabel: o.OptionLabel,
			OptionText:  o.OptionText,
		})
	}
	return result
}
