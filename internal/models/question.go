package models

import (
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionFillBlank      QuestionType = "fill-blank"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionMultipleAnswer QuestionType = "multiple-choice-multiple-answer"
	QuestionTable          QuestionType = "table"
	// QuestionTableChild marks a grid cell row; it is never graded on its own.
	QuestionTableChild QuestionType = "table-child"
)

// QuestionTypes lists every tag accepted when authoring a question.
var QuestionTypes = []QuestionType{
	QuestionFillBlank,
	QuestionMultipleChoice,
	QuestionMultipleAnswer,
	QuestionTable,
	QuestionTableChild,
}

type Question struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	PassageID       *uint        `json:"passage_id" gorm:"index"`
	QuestionGroupID *uint        `json:"question_group_id" gorm:"index"`
	QuestionNumber  int          `json:"question_number" gorm:"not null"`
	QuestionType    QuestionType `json:"question_type" gorm:"not null;size:50"`
	Prompt          *string      `json:"prompt" gorm:"type:text"`

	// Stored as opaque documents; decoded by the grading package.
	TableData      datatypes.JSON `json:"table_data,omitempty" gorm:"type:jsonb"`
	CorrectAnswers datatypes.JSON `json:"correct_answers,omitempty" gorm:"type:jsonb"`

	Options []QuestionOption `json:"options" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string {
	return "questions"
}

// IsGradable reports whether the question contributes to scoring.
func (q *Question) IsGradable() bool {
	return q.QuestionType != QuestionTableChild
}

type QuestionOption struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	QuestionID   uint   `json:"question_id" gorm:"not null;index"`
	OptionLabel  string `json:"option_label" gorm:"not null;size:20"`
	OptionText   string `json:"option_text" gorm:"type:text"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
