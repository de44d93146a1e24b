package grading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// Answer is the canonical value of one user response. It is one of
// TextAnswer, ListAnswer or CellAnswer.
type Answer interface {
	isAnswer()
}

// TextAnswer answers fill-blank and single-choice questions.
type TextAnswer string

// ListAnswer answers multiple-choice-multiple-answer questions.
type ListAnswer []string

// CellAnswer answers table questions, keyed by cell answer id.
type CellAnswer map[string]string

func (TextAnswer) isAnswer() {}
func (ListAnswer) isAnswer() {}
func (CellAnswer) isAnswer() {}

var ErrUnknownAnswerShape = errors.New("unknown stored answer shape")

// EncodeAnswer serializes an answer for storage. Empty lists and maps are
// written as [] and {} rather than null.
func EncodeAnswer(ans Answer) (datatypes.JSON, error) {
	var v any
	switch a := ans.(type) {
	case TextAnswer:
		v = string(a)
	case ListAnswer:
		if a == nil {
			a = ListAnswer{}
		}
		v = []string(a)
	case CellAnswer:
		if a == nil {
			a = CellAnswer{}
		}
		v = map[string]string(a)
	case nil:
		return datatypes.JSON("null"), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAnswerShape, ans)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer: %w", err)
	}
	return datatypes.JSON(data), nil
}

// DecodeAnswer restores an answer written by EncodeAnswer. A null or empty
// document decodes to a nil Answer.
func DecodeAnswer(data datatypes.JSON) (Answer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("failed to decode text answer: %w", err)
		}
		return TextAnswer(s), nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to decode list answer: %w", err)
		}
		if list == nil {
			list = []string{}
		}
		return ListAnswer(list), nil
	case '{':
		var cells map[string]string
		if err := json.Unmarshal(trimmed, &cells); err != nil {
			return nil, fmt.Errorf("failed to decode cell answer: %w", err)
		}
		if cells == nil {
			cells = map[string]string{}
		}
		return CellAnswer(cells), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAnswerShape, trimmed[0])
}
