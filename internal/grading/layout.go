package grading

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

var ErrMalformedLayout = errors.New("malformed table layout")

type tableLayout struct {
	TableData [][]*layoutCell `json:"tableData"`
}

type layoutCell struct {
	IsAnswer bool            `json:"isAnswer"`
	AnswerID json.RawMessage `json:"answerId"`
}

// CellIDs returns the answer ids of every answerable cell, in row order.
// Cells flagged answerable without an id are skipped.
func CellIDs(data datatypes.JSON) ([]string, error) {
	if isNull(data) {
		return nil, fmt.Errorf("%w: no layout", ErrMalformedLayout)
	}

	var layout tableLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLayout, err)
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, row := range layout.TableData {
		for _, cell := range row {
			if cell == nil || !cell.IsAnswer {
				continue
			}
			var v any
			if err := decodeNumber(cell.AnswerID, &v); err != nil {
				return nil, fmt.Errorf("%w: answer id: %v", ErrMalformedLayout, err)
			}
			id, ok := scalarString(v)
			if !ok || id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
