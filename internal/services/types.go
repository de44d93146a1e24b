package services

import (
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// ===== SUBMISSION =====

// SubmitTestRequest carries the whole test's answers keyed by question id or
// by table cell ("q<questionId>_<cellId>").
type SubmitTestRequest struct {
	Answers map[string]any `json:"answers" validate:"required"`
}

type SubmitTestResponse struct {
	AttemptID uint `json:"attempt_id"`
}

// ===== RESULTS AND HISTORY =====

type TestResultResponse struct {
	AttemptID      uint                     `json:"attempt_id"`
	TestID         uint                     `json:"test_id"`
	TestTitle      string                   `json:"test_title"`
	Score          int                      `json:"score"`
	TotalQuestions int                      `json:"total_questions"`
	SubmittedAt    time.Time                `json:"submitted_at"`
	Questions      []QuestionResultResponse `json:"questions"`
}

type QuestionResultResponse struct {
	QuestionID     uint                `json:"question_id"`
	QuestionNumber int                 `json:"question_number"`
	Prompt         *string             `json:"prompt"`
	QuestionType   models.QuestionType `json:"question_type"`
	UserAnswer     datatypes.JSON      `json:"user_answer"`
	CorrectAnswer  datatypes.JSON      `json:"correct_answer"`
	IsCorrect      bool                `json:"is_correct"`
	Options        []OptionResponse    `json:"options"`
}

type HistoryItemResponse struct {
	AttemptID      uint      `json:"attempt_id"`
	TestID         uint      `json:"test_id"`
	TestTitle      string    `json:"test_title"`
	TestType       string    `json:"test_type"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// ===== CATALOG =====

type TestSummaryResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	SkillTypeID     *uint   `json:"skill_type_id"`
	SkillName       *string `json:"skill_name"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	TotalQuestions  int     `json:"total_questions"`
	Attempts        int     `json:"attempts"`
}

type TestDetailsResponse struct {
	ID              uint              `json:"id"`
	Title           string            `json:"title"`
	Type            string            `json:"type"`
	Description     *string           `json:"description"`
	DurationMinutes int               `json:"duration_minutes"`
	TotalQuestions  int               `json:"total_questions"`
	Passages        []PassageResponse `json:"passages"`
}

type PassageResponse struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Questions []QuestionResponse `json:"questions"`
}

// QuestionResponse is the candidate-facing view of a question; it never
// carries the correct answers.
type QuestionResponse struct {
	ID             uint                `json:"id"`
	QuestionNumber int                 `json:"question_number"`
	QuestionType   models.QuestionType `json:"question_type"`
	Prompt         *string             `json:"prompt"`
	TableData      datatypes.JSON      `json:"table_data,omitempty"`
	Options        []OptionResponse    `json:"options"`
}

type OptionResponse struct {
	ID          uint   `json:"id"`
	OptionLabel string `json:"option_label"`
	OptionText  string `json:"option_text"`
}

type ListeningTestDetailsResponse struct {
	ID              uint                    `json:"id"`
	Title           string                  `json:"title"`
	DurationMinutes int                     `json:"duration_minutes"`
	AudioURL        string                  `json:"audio_url"`
	Parts           []ListeningPartResponse `json:"parts"`
	Passages        []PassageResponse       `json:"passages"`
}

type ListeningPartResponse struct {
	ID         uint                    `json:"id"`
	PartNumber int                     `json:"part_number"`
	Title      string                  `json:"title"`
	Groups     []QuestionGroupResponse `json:"groups"`
}

type QuestionGroupResponse struct {
	ID              uint               `json:"id"`
	InstructionText *string            `json:"instruction_text"`
	Questions       []QuestionResponse `json:"questions"`
}

// ===== AUTHORING =====

type TestRequest struct {
	Title           string                 `json:"title" validate:"required,min=1,max=255"`
	Description     *string                `json:"description" validate:"omitempty,max=5000"`
	DurationMinutes int                    `json:"duration_minutes" validate:"min=0,max=600"`
	TestTypeID      uint                   `json:"test_type_id" validate:"required"`
	SkillTypeID     *uint                  `json:"skill_type_id"`
	AudioFileID     *uint                  `json:"audio_file_id"`
	Passages        []PassageRequest       `json:"passages" validate:"dive"`
	ListeningParts  []ListeningPartRequest `json:"listening_parts" validate:"dive"`
}

type PassageRequest struct {
	Title        string            `json:"title" validate:"required,max=255"`
	Content      string            `json:"content"`
	DisplayOrder int               `json:"display_order"`
	Questions    []QuestionRequest `json:"questions" validate:"dive"`
}

type ListeningPartRequest struct {
	PartNumber     int                    `json:"part_number" validate:"min=1"`
	Title          string                 `json:"title" validate:"max=255"`
	QuestionGroups []QuestionGroupRequest `json:"question_groups" validate:"dive"`
}

type QuestionGroupRequest struct {
	InstructionText *string           `json:"instruction_text"`
	DisplayOrder    int               `json:"display_order"`
	Questions       []QuestionRequest `json:"questions" validate:"dive"`
}

type QuestionRequest struct {
	QuestionNumber int                 `json:"question_number" validate:"min=1"`
	QuestionType   models.QuestionType `json:"question_type" validate:"required,question_type"`
	Prompt         *string             `json:"prompt"`
	TableData      datatypes.JSON      `json:"table_data"`
	CorrectAnswers datatypes.JSON      `json:"correct_answers"`
	Options        []OptionRequest     `json:"options" validate:"dive"`
}

type OptionRequest struct {
	OptionLabel  string `json:"option_label" validate:"required,max=20"`
	OptionText   string `json:"option_text"`
	DisplayOrder int    `json:"display_order"`
}

// AdminTestResponse is the editable view of a test, correct answers included.
type AdminTestResponse struct {
	*models.Test
}

// ===== ACCOUNTS =====

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint            `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}
