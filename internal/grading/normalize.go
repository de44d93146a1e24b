package grading

import (
	"fmt"
	"strconv"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// Submission is the raw answer map of a whole test, keyed either by question
// id ("42") or by table cell ("q42_7").
type Submission map[string]any

// QuestionKey is the submission key that answers a whole question.
func QuestionKey(questionID uint) string {
	return strconv.FormatUint(uint64(questionID), 10)
}

// CellKey is the submission key that answers one cell of a table question.
func CellKey(questionID uint, cellID string) string {
	return fmt.Sprintf("q%d_%s", questionID, cellID)
}

// Normalize extracts the canonical answer for q from the submission. Missing
// input yields the empty value of the question's shape. The returned error
// only reports an unreadable table layout; the answer is usable either way.
func Normalize(q *models.Question, sub Submission) (Answer, error) {
	switch q.QuestionType {
	case models.QuestionTable:
		return normalizeTable(q, sub)
	case models.QuestionMultipleAnswer:
		return normalizeList(sub[QuestionKey(q.ID)]), nil
	default:
		return normalizeText(sub[QuestionKey(q.ID)]), nil
	}
}

func normalizeTable(q *models.Question, sub Submission) (Answer, error) {
	cells := CellAnswer{}

	ids, err := CellIDs(q.TableData)
	if err != nil {
		return cells, fmt.Errorf("question %d: %w", q.ID, err)
	}

	for _, id := range ids {
		s, _ := scalarString(sub[CellKey(q.ID, id)])
		cells[id] = s
	}
	return cells, nil
}

func normalizeList(v any) Answer {
	list := ListAnswer{}

	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				list = append(list, s)
			}
		}
	case []string:
		list = append(list, t...)
	case string:
		if t != "" {
			list = append(list, t)
		}
	}
	return list
}

func normalizeText(v any) Answer {
	s, _ := scalarString(v)
	return TextAnswer(s)
}
