package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories"
)

type catalogService struct {
	repo      repositories.Repository
	publicURL string
	logger    *ServiceLogger
}

// NewCatalogService builds the read side of test content. publicURL prefixes
// the storage path of listening audio.
func NewCatalogService(repo repositories.Repository, publicURL string, logger *slog.Logger) CatalogService {
	return &catalogService{
		repo:      repo,
		publicURL: publicURL,
		logger:    NewServiceLogger(logger, LogConfig{Service: "online-test-service", Component: "catalog"}),
	}
}

func (s *catalogService) ListTests(ctx context.Context, filters repositories.TestFilters) ([]TestSummaryResponse, int64, error) {
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

// GetTestDetails returns the reading view of a test without correct answers.
func (s *catalogService) GetTestDetails(ctx context.Context, testID uint) (resp *TestDetailsResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_test_details", 0)
	defer func() { op.LogResult(testID, "test", err) }()

	test, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	return &TestDetailsResponse{
		ID:              test.ID,
		Title:           test.Title,
		Type:            test.TestType.Name,
		Description:     test.Description,
		DurationMinutes: test.DurationMinutes,
		TotalQuestions:  test.TotalQuestions,
		Passages:        buildPassages(test.Passages),
	}, nil
}

// GetListeningTestDetails returns the listening view; a test without audio
// cannot be taken as a listening test.
func (s *catalogService) GetListeningTestDetails(ctx context.Context, testID uint) (resp *ListeningTestDetailsResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_listening_test_details", 0)
	defer func() { op.LogResult(testID, "test", err) }()

	test, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.AudioFile == nil {
		return nil, ErrAudioNotFound
	}

	parts := make([]ListeningPartResponse, 0, len(test.ListeningParts))
	for _, part := range test.ListeningParts {
		groups := make([]QuestionGroupResponse, 0, len(part.QuestionGroups))
		for _, group := range part.QuestionGroups {
			groups = append(groups, QuestionGroupResponse{
				ID:              group.ID,
				InstructionText: group.InstructionText,
				Questions:       buildQuestions(group.Questions),
			})
		}
		parts = append(parts, ListeningPartResponse{
			ID:         part.ID,
			PartNumber: part.PartNumber,
			Title:      part.Title,
			Groups:     groups,
		})
	}

	return &ListeningTestDetailsResponse{
		ID:              test.ID,
		Title:           test.Title,
		DurationMinutes: test.DurationMinutes,
		AudioURL:        s.audioURL(test.AudioFile.StoragePath),
		Parts:           parts,
		Passages:        buildPassages(test.Passages),
	}, nil
}

func (s *catalogService) loadTest(ctx context.Context, testID uint) (*models.Test, error) {
	test, err := s.repo.Test().GetWithQuestions(ctx, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}
	return test, nil
}

func (s *catalogService) audioURL(storagePath string) string {
	if s.publicURL == "" || strings.HasPrefix(storagePath, "http://") || strings.HasPrefix(storagePath, "https://") {
		return storagePath
	}
	joined, err := url.JoinPath(s.publicURL, storagePath)
	if err != nil {
		return s.publicURL + "/" + strings.TrimPrefix(storagePath, "/")
	}
	return joined
}

// buildTestSummaries attaches attempt counts to listed tests.
func buildTestSummaries(ctx context.Context, repo repositories.Repository, tests []*models.Test) ([]TestSummaryResponse, error) {
	ids := make([]uint, 0, len(tests))
	for _, t := range tests {
		ids = append(ids, t.ID)
	}

	counts, err := repo.Attempt().CountByTests(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}

	summaries := make([]TestSummaryResponse, 0, len(tests))
	for _, t := range tests {
		summary := TestSummaryResponse{
			ID:              t.ID,
			Title:           t.Title,
			Type:            t.TestType.Name,
			SkillTypeID:     t.SkillTypeID,
			Description:     t.Description,
			DurationMinutes: t.DurationMinutes,
			TotalQuestions:  t.TotalQuestions,
			Attempts:        counts[t.ID],
		}
		if t.SkillType != nil {
			summary.SkillName = &t.SkillType.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func buildPassages(passages []models.Passage) []PassageResponse {
	result := make([]PassageResponse, 0, len(passages))
	for _, p := range passages {
		result = append(result, PassageResponse{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Questions: buildQuestions(p.Questions),
		})
	}
	return result
}

func buildQuestions(questions []models.Question) []QuestionResponse {
	result := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		result = append(result, QuestionResponse{
			ID:             q.ID,
			QuestionNumber: q.QuestionNumber,
			QuestionType:   q.QuestionType,
			Prompt:         q.Prompt,
			TableData:      q.TableData,
			Options:        buildOptions(q.Options),
		})
	}
	return result
}
