package models

import (
	"time"
)

type TestType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100"`
	Slug string `json:"slug" gorm:"not null;size:100;uniqueIndex"`
}

func (TestType) TableName() string {
	return "test_types"
}

type SkillType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:100"`
	Slug string `json:"slug" gorm:"not null;size:100;uniqueIndex"`
}

func (SkillType) TableName() string {
	return "skill_types"
}

// AudioFile is an uploaded listening track. StoragePath is relative to the public URL.
type AudioFile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FileName    string    `json:"file_name" gorm:"not null;size:255"`
	StoragePath string    `json:"storage_path" gorm:"not null;size:500"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (AudioFile) TableName() string {
	return "audio_files"
}

type Test struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Title           string  `json:"title" gorm:"not null;size:255;index"`
	Description     *string `json:"description" gorm:"type:text"`
	DurationMinutes int     `json:"duration_minutes" gorm:"not null;default:0"`
	// Number of gradable questions, maintained on authoring writes.
	TotalQuestions int   `json:"total_questions" gorm:"not null;default:0"`
	TestTypeID     uint  `json:"test_type_id" gorm:"not null;index"`
	SkillTypeID    *uint `json:"skill_type_id" gorm:"index"`
	AudioFileID    *uint `json:"audio_file_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	TestType       TestType        `json:"test_type" gorm:"foreignKey:TestTypeID"`
	SkillType      *SkillType      `json:"skill_type,omitempty" gorm:"foreignKey:SkillTypeID"`
	AudioFile      *AudioFile      `json:"audio_file,omitempty" gorm:"foreignKey:AudioFileID"`
	Passages       []Passage       `json:"passages" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	ListeningParts []ListeningPart `json:"listening_parts" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	Attempts       []TestAttempt   `json:"-" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	AttemptCount int `json:"attempt_count" gorm:"-"`
}

func (Test) TableName() string {
	return "tests"
}

// Questions returns every question of the test, reading passages first and then
// listening groups, with duplicates (by id) removed.
func (t *Test) Questions() []*Question {
	seen := make(map[uint]struct{})
	var questions []*Question

	add := func(q *Question) {
		if q.ID != 0 {
			if _, ok := seen[q.ID]; ok {
				return
			}
			seen[q.ID] = struct{}{}
		}
		questions = append(questions, q)
	}

	for i := range t.Passages {
		for j := range t.Passages[i].Questions {
			add(&t.Passages[i].Questions[j])
		}
	}
	for i := range t.ListeningParts {
		for j := range t.ListeningParts[i].QuestionGroups {
			group := &t.ListeningParts[i].QuestionGroups[j]
			for k := range group.Questions {
				add(&group.Questions[k])
			}
		}
	}

	return questions
}

// CountGradable returns how many of the test's questions are graded.
func (t *Test) CountGradable() int {
	count := 0
	for _, q := range t.Questions() {
		if q.IsGradable() {
			count++
		}
	}
	return count
}

type Passage struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	TestID       uint   `json:"test_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"not null;size:255"`
	Content      string `json:"content" gorm:"type:text"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`

	Questions []Question `json:"questions" gorm:"foreignKey:PassageID;constraint:OnDelete:CASCADE"`
}

func (Passage) TableName() string {
	return "passages"
}

type ListeningPart struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TestID     uint   `json:"test_id" gorm:"not null;index"`
	PartNumber int    `json:"part_number" gorm:"not null"`
	Title      string `json:"title" gorm:"size:255"`

	QuestionGroups []QuestionGroup `json:"question_groups" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
}

func (ListeningPart) TableName() string {
	return "listening_parts"
}

type QuestionGroup struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	PartID          uint    `json:"part_id" gorm:"not null;index"`
	InstructionText *string `json:"instruction_text" gorm:"type:text"`
	DisplayOrder    int     `json:"display_order" gorm:"not null;default:0"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuestionGroupID;constraint:OnDelete:CASCADE"`
}

func (QuestionGroup) TableName() string {
	return "question_groups"
}
