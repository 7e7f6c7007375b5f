package classroom

import (
	"github.com/go-playground/validator/v10"

	"github.com/mwalimu/darasa/core"
)

var (
	materialTypeTag  = "materialtype"
	materialTypeText = "invalid material type"

	dueDateRequiredTag  = "duedate_required"
	dueDateRequiredText = "a due date is required for this material type"

	questionsRequiredTag  = "questions_required"
	questionsRequiredText = "an auto-graded test requires at least one question"

	correctIndexTag  = "correct_index"
	correctIndexText = "a multiple-choice question's correct index must point at one of its options"
)

func init() {
	// register validators
	core.Validate.RegisterStructValidation(materialStructValidation, NewMaterial{})

	core.RegisterCustomTranslation(materialTypeTag, materialTypeText)
	core.RegisterCustomTranslation(dueDateRequiredTag, dueDateRequiredText)
	core.RegisterCustomTranslation(questionsRequiredTag, questionsRequiredText)
	core.RegisterCustomTranslation(correctIndexTag, correctIndexText)
}

// materialStructValidation rejects a NewMaterial before anything is written:
// unknown types, a missing due date on dated types and malformed test questions.
func materialStructValidation(sl validator.StructLevel) {
	nm := sl.Current().Interface().(NewMaterial)

	if !nm.Type.Valid() {
		sl.ReportError(nm.Type, "type", "Type", materialTypeTag, "")
		return
	}
	if nm.Type.RequiresDueDate() && !nm.DueDate.Valid {
		sl.ReportError(nm.DueDate, "due_date", "DueDate", dueDateRequiredTag, "")
	}
	if nm.Type == MaterialTest && nm.AutoGrade && len(nm.Questions) == 0 {
		sl.ReportError(nm.Questions, "questions", "Questions", questionsRequiredTag, "")
	}
	for _, q := range nm.Questions {
		if mcq, ok := q.(MCQQuestion); ok {
			if mcq.CorrectIndex < 0 || mcq.CorrectIndex >= len(mcq.Options) {
				sl.ReportError(nm.Questions, "questions", "Questions", correctIndexTag, "")
				break
			}
		}
	}
}
