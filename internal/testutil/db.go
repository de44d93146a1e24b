// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/SAP-F-2025/online-test-service/internal/repositories/postgres"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// The pool holds one connection so the database lives as long as the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.AutoMigrate(db))
	return db
}

// SeedTypes inserts a reading and a listening test type and returns them.
func SeedTypes(t *testing.T, db *gorm.DB) (reading, listening *models.TestType) {
	t.Helper()

	reading = &models.TestType{Name: "Reading", Slug: "reading"}
	listening = &models.TestType{Name: "Listening", Slug: "listening"}
	require.NoError(t, db.Create(reading).Error)
	require.NoError(t, db.Create(listening).Error)
	return reading, listening
}

// Layout is a table layout with answerable cells 1 and 2.
const Layout = `{"tableData":[[{"isAnswer":false},{"isAnswer":true,"answerId":1}],[{"isAnswer":true,"answerId":2}]]}`

// SampleTest builds an unsaved test exercising every question type:
//
//	passage: 1 fill-blank "Paris", 2 multiple-choice "B", 3 table {1:x, 2:y}, 4 table-child
//	listening group: 5 multi-answer [A C]
//
// Gradable points total 1+1+2+1 = 5.
func SampleTest(testTypeID uint) *models.Test {
	prompt := "Capital of France?"
	return &models.Test{
		Title:           "Sample reading test",
		DurationMinutes: 60,
		TotalQuestions:  4,
		TestTypeID:      testTypeID,
		Passages: []models.Passage{
			{
				Title:        "Passage 1",
				Content:      "Some text",
				DisplayOrder: 1,
				Questions: []models.Question{
					{
						QuestionNumber: 1,
						QuestionType:   models.QuestionFillBlank,
						Prompt:         &prompt,
						CorrectAnswers: datatypes.JSON(`{"answer":"Paris"}`),
					},
					{
						QuestionNumber: 2,
						QuestionType:   models.QuestionMultipleChoice,
						CorrectAnswers: datatypes.JSON(`{"answer":"B"}`),
						Options: []models.QuestionOption{
							{OptionLabel: "A", OptionText: "London", DisplayOrder: 1},
							{OptionLabel: "B", OptionText: "Paris", DisplayOrder: 2},
						},
					},
					{
						QuestionNumber: 3,
						QuestionType:   models.QuestionTable,
						TableData:      datatypes.JSON(Layout),
						CorrectAnswers: datatypes.JSON(`{"1":"x","2":"y"}`),
					},
					{
						QuestionNumber: 4,
						QuestionType:   models.QuestionTableChild,
					},
				},
			},
		},
		ListeningParts: []models.ListeningPart{
			{
				PartNumber: 1,
				Title:      "Part 1",
				QuestionGroups: []models.QuestionGroup{
					{
						DisplayOrder: 1,
						Questions: []models.Question{
							{
								QuestionNumber: 5,
								QuestionType:   models.QuestionMultipleAnswer,
								CorrectAnswers: datatypes.JSON(`{"answers":["A","C"]}`),
								Options: []models.QuestionOption{
									{OptionLabel: "A", OptionText: "one", DisplayOrder: 1},
									{OptionLabel: "B", OptionText: "two", DisplayOrder: 2},
									{OptionLabel: "C", OptionText: "three", DisplayOrder: 3},
								},
							},
						},
					},
				},
			},
		},
	}
}
