package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/online-test-service/internal/events"
	"github.com/SAP-F-2025/online-test-service/internal/grading"
	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
)

type submissionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
	now       func() time.Time
}

func NewSubmissionService(repo repositories.Repository, publisher events.EventPublisher, validator *validator.Validator, logger *slog.Logger) SubmissionService {
	return &submissionService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "submission"}),
		now:       time.Now,
	}
}

// Submit grades every gradable question of the test against the submission
// and stores the attempt with all of its answers in one transaction.
func (s *submissionService) Submit(ctx context.Context, testID uint, userID uint, req *SubmitTestRequest) (resp *SubmitTestResponse, err error) {
	op := s.logger.WithOperation(ctx, "submit_test", userID)
	defer func() { op.LogResult(testID, "test", err) }()

	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	test, err := s.repo.Test().GetWithQuestions(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}

	attempt := s.gradeSubmission(ctx, test, userID, grading.Submission(req.Answers))

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Attempt().Create(ctx, attempt)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	s.publishSubmitted(ctx, attempt, userID)

	return &SubmitTestResponse{AttemptID: attempt.ID}, nil
}

// gradeSubmission builds the attempt with one answer row per gradable
// question. Score and total are final before anything is written.
func (s *submissionService) gradeSubmission(ctx context.Context, test *models.Test, userID uint, sub grading.Submission) *models.TestAttempt {
	attempt := &models.TestAttempt{
		TestID:      test.ID,
		UserID:      &userID,
		SubmittedAt: s.now().UTC(),
	}

	for _, q := range test.Questions() {
		if !q.IsGradable() {
			continue
		}

		key, err := grading.InspectKey(q)
		if err != nil {
			s.logger.LogMalformedData(ctx, "submit_test", q.ID, err)
		}

		ans, err := grading.Normalize(q, sub)
		if err != nil {
			s.logger.LogMalformedData(ctx, "submit_test", q.ID, err)
		}

		correct := s.gradeQuestion(ctx, userID, q, key, ans)

		stored, err := grading.EncodeAnswer(ans)
		if err != nil {
			s.logger.LogMalformedData(ctx, "submit_test", q.ID, err)
			stored = datatypes.JSON("null")
		}

		points := key.Points()
		attempt.TotalQuestions += points
		if correct {
			attempt.Score += points
		}

		attempt.Answers = append(attempt.Answers, models.UserAnswer{
			QuestionID: q.ID,
			Answer:     stored,
			IsCorrect:  correct,
		})
	}

	return attempt
}

// gradeQuestion fails closed: a panic while grading one question marks it
// incorrect and the rest of the submission is still graded.
func (s *submissionService) gradeQuestion(ctx context.Context, userID uint, q *models.Question, key grading.AnswerKey, ans grading.Answer) (correct bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.LogRecovery(ctx, fmt.Sprintf("grade_question_%d", q.ID), userID, r, debug.Stack())
			correct = false
		}
	}()
	return grading.GradeWithKey(q.QuestionType, key, ans)
}

func (s *submissionService) publishSubmitted(ctx context.Context, attempt *models.TestAttempt, userID uint) {
	if s.publisher == nil {
		return
	}

	event := events.NewEvent(events.EventAttemptSubmitted, events.AttemptSubmittedEvent{
		AttemptID:   attempt.ID,
		TestID:      attempt.TestID,
		UserID:      userID,
		Score:       attempt.Score,
		TotalPoints: attempt.TotalQuestions,
		SubmittedAt: attempt.SubmittedAt,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish submission event",
			"attempt_id", attempt.ID,
			"error", err)
	}
}
