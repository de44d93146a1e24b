package validator

import (
	"fmt"
	"slices"

	"github.com/SAP-F-2025/online-test-service/internal/grading"
	"github.com/SAP-F-2025/online-test-service/internal/models"
)

// QuestionValidator checks that stored question documents are gradable
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion checks the correct answer, layout and options of one
// question. field prefixes every reported field name.
func (v *QuestionValidator) ValidateQuestion(field string, q *models.Question) ValidationErrors {
	var errs ValidationErrors
	add := func(name, rule, message string, value interface{}) {
		errs = append(errs, *NewValidationErrorWithRule(field+"."+name, message, rule, value))
	}

	if q.QuestionType == models.QuestionTableChild {
		return nil
	}

	key, err := grading.InspectKey(q)
	if err != nil {
		add("correct_answers", "answer_key", err.Error(), string(q.CorrectAnswers))
		return errs
	}

	switch k := key.(type) {
	case grading.SingleKey:
		if len(k.Alternatives()) == 0 {
			add("correct_answers", "answer_key", "answer must not be blank", k.Answer)
		}
		if q.QuestionType == models.QuestionMultipleChoice && len(q.Options) == 0 {
			add("options", "required", "is required for multiple-choice questions", nil)
		}
	case grading.MultiKey:
		if len(k.Answers) == 0 {
			add("correct_answers", "answer_key", "answers must not be empty", nil)
		}
		if len(q.Options) == 0 {
			add("options", "required", "is required for multiple-answer questions", nil)
		}
	case grading.TableKey:
		ids, err := grading.CellIDs(q.TableData)
		if err != nil {
			add("table_data", "table_layout", err.Error(), nil)
			break
		}
		if len(ids) == 0 {
			add("table_data", "table_layout", "must contain at least one answer cell", nil)
		}
		for id := range k.Cells {
			if !slices.Contains(ids, id) {
				add("correct_answers", "answer_key", fmt.Sprintf("cell %s is not an answer cell of the layout", id), id)
			}
		}
	}

	labels := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if _, dup := labels[opt.OptionLabel]; dup {
			add(fmt.Sprintf("options[%d].option_label", i), "unique", "must be unique within the question", opt.OptionLabel)
		}
		labels[opt.OptionLabel] = struct{}{}
	}

	return errs
}

// ValidateTest validates every question of the test and checks that
// question numbers are unique.
func (v *QuestionValidator) ValidateTest(test *models.Test) ValidationErrors {
	var errs ValidationErrors
	numbers := make(map[int]string)

	check := func(field string, q *models.Question) {
		errs = append(errs, v.ValidateQuestion(field, q)...)
		if prev, dup := numbers[q.QuestionNumber]; dup {
			errs = append(errs, *NewValidationErrorWithRule(field+".question_number",
				fmt.Sprintf("duplicates %s", prev), "unique", q.QuestionNumber))
			return
		}
		numbers[q.QuestionNumber] = field
	}

	for i := range test.Passages {
		for j := range test.Passages[i].Questions {
			check(fmt.Sprintf("passages[%d].questions[%d]", i, j), &test.Passages[i].Questions[j])
		}
	}
	for i := range test.ListeningParts {
		for j := range test.ListeningParts[i].QuestionGroups {
			group := &test.ListeningParts[i].QuestionGroups[j]
			for k := range group.Questions {
				check(fmt.Sprintf("listening_parts[%d].question_groups[%d].questions[%d]", i, j, k), &group.Questions[k])
			}
		}
	}

	return errs
}
