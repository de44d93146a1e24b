package models

import (
	"time"

	"gorm.io/datatypes"
)

// TestAttempt is written once per submission together with all of its answers.
type TestAttempt struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	TestID uint  `json:"test_id" gorm:"not null;index"`
	UserID *uint `json:"user_id" gorm:"index"`

	// Score is the points earned; TotalQuestions is the points available when submitted.
	Score          int       `json:"score" gorm:"not null;default:0"`
	TotalQuestions int       `json:"total_questions" gorm:"not null;default:0"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"not null;index"`

	// Relations
	Test    Test         `json:"test" gorm:"foreignKey:TestID"`
	Answers []UserAnswer `json:"answers" gorm:"foreignKey:TestAttemptID;constraint:OnDelete:CASCADE"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

type UserAnswer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TestAttemptID uint           `json:"test_attempt_id" gorm:"not null;index"`
	QuestionID    uint           `json:"question_id" gorm:"not null;index"`
	Answer        datatypes.JSON `json:"user_answer" gorm:"column:user_answer;type:jsonb"`
	IsCorrect     bool           `json:"is_correct" gorm:"not null;default:false"`

	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
