package grading

import (
	"testing"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const layoutJSON = `{"tableData":[
	[{"isAnswer":false,"answerId":null},{"isAnswer":true,"answerId":1}],
	[{"isAnswer":true,"answerId":"2"},null,{"isAnswer":true,"answerId":3}]
]}`

func tableQuestion(id uint, layout string) *models.Question {
	return &models.Question{
		ID:             id,
		QuestionType:   models.QuestionTable,
		TableData:      datatypes.JSON(layout),
		CorrectAnswers: datatypes.JSON(`{"1":"a","2":"b","3":"c"}`),
	}
}

func TestCellIDs(t *testing.T) {
	ids, err := CellIDs(datatypes.JSON(layoutJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	_, err = CellIDs(nil)
	assert.ErrorIs(t, err, ErrMalformedLayout)

	_, err = CellIDs(datatypes.JSON(`{"tableData":"nope"}`))
	assert.ErrorIs(t, err, ErrMalformedLayout)
}

func TestNormalize_Table(t *testing.T) {
	q := tableQuestion(10, layoutJSON)
	sub := Submission{
		"q10_1": "a",
		"q10_3": 7.0,
		"q11_2": "other question",
		"10":    "ignored",
	}

	ans, err := Normalize(q, sub)
	require.NoError(t, err)
	assert.Equal(t, CellAnswer{"1": "a", "2": "", "3": "7"}, ans)
}

func TestNormalize_TableWithBadLayout(t *testing.T) {
	ans, err := Normalize(tableQuestion(10, `[1,2`), Submission{"q10_1": "a"})

	assert.ErrorIs(t, err, ErrMalformedLayout)
	assert.Equal(t, CellAnswer{}, ans)
}

func TestNormalize_PlainKeys(t *testing.T) {
	fill := &models.Question{ID: 3, QuestionType: models.QuestionFillBlank}
	multi := &models.Question{ID: 4, QuestionType: models.QuestionMultipleAnswer}

	tests := []struct {
		name string
		q    *models.Question
		sub  Submission
		want Answer
	}{
		{"text", fill, Submission{"3": " Paris "}, TextAnswer(" Paris ")},
		{"number as text", fill, Submission{"3": 42.0}, TextAnswer("42")},
		{"object as text", fill, Submission{"3": map[string]any{"a": 1}}, TextAnswer("")},
		{"missing text", fill, Submission{}, TextAnswer("")},
		{"list", multi, Submission{"4": []any{"A", "C"}}, ListAnswer{"A", "C"}},
		{"list skips non-scalars", multi, Submission{"4": []any{"A", nil, []any{"B"}}}, ListAnswer{"A"}},
		{"single value as list", multi, Submission{"4": "A"}, ListAnswer{"A"}},
		{"missing list", multi, Submission{}, ListAnswer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ans, err := Normalize(tt.q, tt.sub)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ans)
		})
	}
}

func TestNormalize_MissingAnswerGradesFalse(t *testing.T) {
	questions := []*models.Question{
		{ID: 1, QuestionType: models.QuestionFillBlank, CorrectAnswers: datatypes.JSON(`{"answer":"x"}`)},
		{ID: 2, QuestionType: models.QuestionMultipleAnswer, CorrectAnswers: datatypes.JSON(`{"answers":["x"]}`)},
		tableQuestion(3, layoutJSON),
	}

	for _, q := range questions {
		ans, err := Normalize(q, Submission{})
		require.NoError(t, err)
		assert.False(t, Grade(q, ans), "question %d", q.ID)
	}
}

func TestAnswerRoundTrip(t *testing.T) {
	answers := []Answer{
		TextAnswer(""),
		TextAnswer("  Paris"),
		ListAnswer{},
		ListAnswer{"A", "C"},
		CellAnswer{},
		CellAnswer{"1": "a", "2": ""},
	}

	for _, ans := range answers {
		data, err := EncodeAnswer(ans)
		require.NoError(t, err)

		decoded, err := DecodeAnswer(data)
		require.NoError(t, err)
		assert.Equal(t, ans, decoded, string(data))
	}
}

func TestEncodeAnswer_EmptyCollections(t *testing.T) {
	data, err := EncodeAnswer(ListAnswer(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = EncodeAnswer(CellAnswer(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestDecodeAnswer_Unknown(t *testing.T) {
	ans, err := DecodeAnswer(datatypes.JSON(`null`))
	assert.NoError(t, err)
	assert.Nil(t, ans)

	_, err = DecodeAnswer(datatypes.JSON(`12`))
	assert.ErrorIs(t, err, ErrUnknownAnswerShape)
}
