package grading

import (
	"strings"

	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// Grade reports whether ans is a correct response to q.
func Grade(q *models.Question, ans Answer) bool {
	return GradeWithKey(q.QuestionType, ParseKey(q.CorrectAnswers), ans)
}

// GradeWithKey compares ans against an already parsed key. Any mismatch
// between question type, key and answer shape grades false.
func GradeWithKey(qt models.QuestionType, key AnswerKey, ans Answer) bool {
	switch qt {
	case models.QuestionFillBlank, models.QuestionMultipleChoice:
		k, ok := key.(SingleKey)
		a, aok := ans.(TextAnswer)
		return ok && aok && gradeSingle(k, a)
	case models.QuestionMultipleAnswer:
		k, ok := key.(MultiKey)
		a, aok := ans.(ListAnswer)
		return ok && aok && gradeMulti(k, a)
	case models.QuestionTable:
		k, ok := key.(TableKey)
		a, aok := ans.(CellAnswer)
		return ok && aok && gradeTable(k, a)
	default:
		return false
	}
}

func gradeSingle(key SingleKey, ans TextAnswer) bool {
	given := strings.TrimSpace(string(ans))
	if given == "" {
		return false
	}
	for _, alt := range key.Alternatives() {
		if strings.EqualFold(given, alt) {
			return true
		}
	}
	return false
}

// gradeMulti compares as sets. Entries are trimmed; case is significant.
func gradeMulti(key MultiKey, ans ListAnswer) bool {
	want := toSet(key.Answers)
	if len(want) == 0 {
		return false
	}
	got := toSet(ans)
	if len(got) != len(want) {
		return false
	}
	for v := range want {
		if _, ok := got[v]; !ok {
			return false
		}
	}
	return true
}

// gradeTable requires every keyed cell to match. An empty key is vacuously correct.
func gradeTable(key TableKey, ans CellAnswer) bool {
	for id, expected := range key.Cells {
		given, ok := ans[id]
		if !ok {
			return false
		}
		if !strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected)) {
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
