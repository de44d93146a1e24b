package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/online-test-service/internal/cache"
	"github.com/SAP-F-2025/online-test-service/internal/events"
	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
	"github.com/SAP-F-2025/online-test-service/internal/validator"
)

type adminService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

// NewAdminService builds the authoring service. cacheService and publisher
// may be nil.
func NewAdminService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, validator *validator.Validator, logger *slog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "admin"}),
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *adminService) CreateTest(ctx context.Context, req *TestRequest, adminID uint) (resp *AdminTestResponse, err error) {
	op := s.logger.WithOperation(ctx, "create_test", adminID)
	var testID uint
	defer func() { op.LogResult(testID, "test", err) }()

	test, err := s.prepareTest(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Test().Create(ctx, test)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	testID = test.ID

	op.LogAudit(AuditEventCreate, test.ID, "test", map[string]interface{}{"title": test.Title, "total_questions": test.TotalQuestions})
	s.publishChange(ctx, events.EventTestCreated, test, adminID)

	return s.GetTestForEdit(ctx, test.ID)
}

// UpdateTest replaces the test and its whole structure. Tests that already
// have attempts are frozen so stored results keep matching their questions.
func (s *adminService) UpdateTest(ctx context.Context, testID uint, req *TestRequest, adminID uint) (resp *AdminTestResponse, err error) {
	op := s.logger.WithOperation(ctx, "update_test", adminID)
	defer func() { op.LogResult(testID, "test", err) }()

	if _, err = s.repo.Test().GetByID(ctx, testID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	counts, err := s.repo.Attempt().CountByTests(ctx, []uint{testID})
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}
	if counts[testID] > 0 {
		return nil, ErrTestHasAttempts
	}

	test, err := s.prepareTest(ctx, req)
	if err != nil {
		return nil, err
	}
	test.ID = testID

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Test().Update(ctx, test)
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to update test: %w", err)
	}

	op.LogAudit(AuditEventUpdate, testID, "test", map[string]interface{}{"title": test.Title, "total_questions": test.TotalQuestions})
	s.publishChange(ctx, events.EventTestUpdated, test, adminID)

	return s.GetTestForEdit(ctx, testID)
}

// DeleteTest removes the test with every attempt taken on it.
func (s *adminService) DeleteTest(ctx context.Context, testID uint, adminID uint) (err error) {
	op := s.logger.WithOperation(ctx, "delete_test", adminID)
	defer func() { op.LogResult(testID, "test", err) }()

	test, err := s.repo.Test().GetByID(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrTestNotFound
		}
		return fmt.Errorf("failed to get test: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Test().Delete(ctx, testID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}

	// Cached results of the removed attempts must not outlive them
	if s.cache != nil {
		if cacheErr := s.cache.DeletePattern(ctx, cache.TestResultsPattern); cacheErr != nil {
			s.logger.Logger().Warn("Failed to invalidate result cache", "test_id", testID, "error", cacheErr)
		}
	}

	op.LogAudit(AuditEventDelete, testID, "test", map[string]interface{}{"title": test.Title})
	s.publishChange(ctx, events.EventTestDeleted, test, adminID)

	return nil
}

func (s *adminService) GetTestForEdit(ctx context.Context, testID uint) (*AdminTestResponse, error) {
	test, err := s.repo.Test().GetWithQuestions(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	counts, err := s.repo.Attempt().CountByTests(ctx, []uint{testID})
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}
	test.AttemptCount = counts[testID]

	return &AdminTestResponse{Test: test}, nil
}

func (s *adminService) ListTestsForAdmin(ctx context.Context, filters repositories.TestFilters) ([]TestSummaryResponse, int64, error) {
	tests, total, err := s.repo.Test().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tests: %w", err)
	}

	summaries, err := buildTestSummaries(ctx, s.repo, tests)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// ===== HELPERS =====

// prepareTest validates the request, resolves lookups and builds the model
// with its gradable question count.
func (s *adminService) prepareTest(ctx context.Context, req *TestRequest) (*models.Test, error) {
	if req == nil {
		return nil, ErrValidationFailed
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	testType, err := s.repo.Test().GetTestType(ctx, req.TestTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get test type: %w", err)
	}
	if testType == nil {
		return nil, ErrTestTypeNotFound
	}

	if req.SkillTypeID != nil {
		skillType, err := s.repo.Test().GetSkillType(ctx, *req.SkillTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get skill type: %w", err)
		}
		if skillType == nil {
			return nil, ErrSkillTypeNotFound
		}
	}

	test := buildTestModel(req)
	if errs := s.validator.Question().ValidateTest(test); len(errs) > 0 {
		return nil, errs
	}
	test.TotalQuestions = test.CountGradable()

	return test, nil
}

func (s *adminService) publishChange(ctx context.Context, eventType events.EventType, test *models.Test, adminID uint) {
	if s.publisher == nil {
		return
	}

	event := events.NewEvent(eventType, events.TestChangedEvent{
		TestID:         test.ID,
		Title:          test.Title,
		TotalQuestions: test.TotalQuestions,
		ChangedBy:      adminID,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish test event", "test_id", test.ID, "event_type", eventType, "error", err)
	}
}

func buildTestModel(req *TestRequest) *models.Test {
	test := &models.Test{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		TestTypeID:      req.TestTypeID,
		SkillTypeID:     req.SkillTypeID,
		AudioFileID:     req.AudioFileID,
	}

	for _, p := range req.Passages {
		test.Passages = append(test.Passages, models.Passage{
			Title:        p.Title,
			Content:      p.Content,
			DisplayOrder: p.DisplayOrder,
			Questions:    buildQuestionModels(p.Questions),
		})
	}

	for _, part := range req.ListeningParts {
		lp := models.ListeningPart{PartNumber: part.PartNumber, Title: part.Title}
		for _, g := range part.QuestionGroups {
			lp.QuestionGroups = append(lp.QuestionGroups, models.QuestionGroup{
				InstructionText: g.InstructionText,
				DisplayOrder:    g.DisplayOrder,
				Questions:       buildQuestionModels(g.Questions),
			})
		}
		test.ListeningParts = append(test.ListeningParts, lp)
	}

	return test
}

func buildQuestionModels(reqs []QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqs))
	for _, q := range reqs {
		question := models.Question{
			QuestionNumber: q.QuestionNumber,
			QuestionType:   q.QuestionType,
			Prompt:         q.Prompt,
			TableData:      q.TableData,
			CorrectAnswers: q.CorrectAnswers,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.QuestionOption{
				OptionLabel:  o.OptionLabel,
				OptionText:   o.OptionText,
				DisplayOrder: o.DisplayOrder,
			})
		}
		questions = append(questions, question)
	}
	return questions
}
