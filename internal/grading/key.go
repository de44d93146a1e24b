package grading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/online-test-service/internal/models"
	"gorm.io/datatypes"
)

var ErrMalformedKey = errors.New("malformed correct answer")

// AnswerKey is the decoded correct-answer document of a question. It is one
// of SingleKey, MultiKey, TableKey or MalformedKey.
type AnswerKey interface {
	// Points is the weight of the question, derived from the key's shape only.
	Points() int
	isKey()
}

// SingleKey is stored as {"answer": "..."}; alternatives are separated by ';'.
type SingleKey struct {
	Answer string
}

// MultiKey is stored as {"answers": ["...", ...]}.
type MultiKey struct {
	Answers []string
}

// TableKey is stored as {"<cellId>": "...", ...}.
type TableKey struct {
	Cells map[string]string
}

// MalformedKey stands in for a document that could not be decoded. It never
// grades correct but still carries a weight so the question stays in the total.
type MalformedKey struct {
	Weight int
	Reason string
}

func (SingleKey) Points() int { return 1 }
func (MultiKey) Points() int  { return 1 }

func (k TableKey) Points() int {
	return max(len(k.Cells), 1)
}

func (k MalformedKey) Points() int {
	return max(k.Weight, 1)
}

func (SingleKey) isKey()    {}
func (MultiKey) isKey()     {}
func (TableKey) isKey()     {}
func (MalformedKey) isKey() {}

// Alternatives splits the answer on ';' and drops blank entries.
func (k SingleKey) Alternatives() []string {
	var alts []string
	for _, part := range strings.Split(k.Answer, ";") {
		if part = strings.TrimSpace(part); part != "" {
			alts = append(alts, part)
		}
	}
	return alts
}

// ParseKey decodes a stored correct-answer document by shape. It never fails:
// an undecodable document yields a MalformedKey.
func ParseKey(data datatypes.JSON) AnswerKey {
	trimmed := bytes.TrimSpace(data)
	if isNull(trimmed) {
		return MalformedKey{Weight: 1, Reason: "missing correct answer"}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return MalformedKey{Weight: 1, Reason: "correct answer is not an object"}
	}

	if raw, ok := doc["answer"]; ok {
		if isNull(raw) {
			return MalformedKey{Weight: 1, Reason: "answer is null"}
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return MalformedKey{Weight: 1, Reason: "answer is not a string"}
		}
		return SingleKey{Answer: s}
	}

	if raw, ok := doc["answers"]; ok {
		if isNull(raw) {
			return MalformedKey{Weight: 1, Reason: "answers is null"}
		}
		var list []any
		if err := json.Unmarshal(raw, &list); err != nil {
			return MalformedKey{Weight: 1, Reason: "answers is not a list"}
		}
		answers := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := scalarString(item)
			if !ok {
				return MalformedKey{Weight: 1, Reason: "answers contains a non-scalar value"}
			}
			answers = append(answers, s)
		}
		return MultiKey{Answers: answers}
	}

	cells := make(map[string]string, len(doc))
	for id, raw := range doc {
		var v any
		if err := decodeNumber(raw, &v); err != nil {
			return MalformedKey{Weight: len(doc), Reason: fmt.Sprintf("cell %s is unreadable", id)}
		}
		s, ok := scalarString(v)
		if !ok {
			return MalformedKey{Weight: len(doc), Reason: fmt.Sprintf("cell %s is not a scalar", id)}
		}
		cells[id] = s
	}
	return TableKey{Cells: cells}
}

// InspectKey parses the question's key and reports whether it fits the
// question type. The key is returned even when an error is reported.
func InspectKey(q *models.Question) (AnswerKey, error) {
	key := ParseKey(q.CorrectAnswers)

	if m, ok := key.(MalformedKey); ok {
		return key, fmt.Errorf("%w: question %d: %s", ErrMalformedKey, q.ID, m.Reason)
	}

	var fits bool
	switch q.QuestionType {
	case models.QuestionFillBlank, models.QuestionMultipleChoice:
		_, fits = key.(SingleKey)
	case models.QuestionMultipleAnswer:
		_, fits = key.(MultiKey)
	case models.QuestionTable:
		_, fits = key.(TableKey)
	case models.QuestionTableChild:
		fits = true
	default:
		return key, fmt.Errorf("%w: question %d: unsupported type %q", ErrMalformedKey, q.ID, q.QuestionType)
	}

	if !fits {
		return key, fmt.Errorf("%w: question %d: %T does not fit type %q", ErrMalformedKey, q.ID, key, q.QuestionType)
	}
	return key, nil
}

// PointsFor returns the question's weight.
func PointsFor(q *models.Question) int {
	return ParseKey(q.CorrectAnswers).Points()
}
