package classroom

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
)

// Question kinds
const (
	QuestionMCQ  = QuestionKind("MCQ")
	QuestionOpen = QuestionKind("OPEN")
)

type (
	QuestionKind string

	// Question is one test question; either an MCQQuestion or an OpenQuestion.
	Question interface {
		Kind() QuestionKind
		Text() string
	}

	MCQQuestion struct {
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	}

	OpenQuestion struct {
		Prompt      string `json:"prompt"`
		ModelAnswer string `json:"model_answer"`
	}

	// Questions carries the tagged-union JSON encoding of a question list.
	Questions []Question
)

func (q MCQQuestion) Kind() QuestionKind  { return QuestionMCQ }
func (q MCQQuestion) Text() string        { return q.Prompt }
func (q OpenQuestion) Kind() QuestionKind { return QuestionOpen }
func (q OpenQuestion) Text() string       { return q.Prompt }

// questionEnvelope is the wire form of a Question.
type questionEnvelope struct {
	Kind         QuestionKind `json:"kind"`
	Prompt       string       `json:"prompt"`
	Options      []string     `json:"options,omitempty"`
	CorrectIndex *int         `json:"correct_index,omitempty"`
	ModelAnswer  string       `json:"model_answer,omitempty"`
}

func (qs Questions) MarshalJSON() ([]byte, error) {
	envs := make([]questionEnvelope, 0, len(qs))
	for _, q := range qs {
		switch q := q.(type) {
		case MCQQuestion:
			idx := q.CorrectIndex
			envs = append(envs, questionEnvelope{
				Kind:         QuestionMCQ,
				Prompt:       q.Prompt,
				Options:      q.Options,
				CorrectIndex: &idx,
			})
		case OpenQuestion:
			envs = append(envs, questionEnvelope{
				Kind:        QuestionOpen,
				Prompt:      q.Prompt,
				ModelAnswer: q.ModelAnswer,
			})
		default:
			return nil, errors.Errorf("classroom: unknown question type %T", q)
		}
	}
	return json.Marshal(envs)
}

func (qs *Questions) UnmarshalJSON(data []byte) error {
	var envs []questionEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(Questions, 0, len(envs))
	for _, env := range envs {
		switch env.Kind {
		case QuestionMCQ:
			var idx int
			if env.CorrectIndex != nil {
				idx = *env.CorrectIndex
			}
			out = append(out, MCQQuestion{Prompt: env.Prompt, Options: env.Options, CorrectIndex: idx})
		case QuestionOpen:
			out = append(out, OpenQuestion{Prompt: env.Prompt, ModelAnswer: env.ModelAnswer})
		default:
			return errors.Errorf("classroom: unknown question kind %q", env.Kind)
		}
	}
	*qs = out
	return nil
}

// QuestionsFromDrafts converts machine-authored drafts into questions,
// skipping drafts of unknown kind.
func QuestionsFromDrafts(drafts []core.QuestionDraft) Questions {
	qs := make(Questions, 0, len(drafts))
	for _, d := range drafts {
		switch d.Kind {
		case core.DraftMCQ:
			qs = append(qs, MCQQuestion{Prompt: d.Prompt, Options: d.Options, CorrectIndex: d.CorrectIndex})
		case core.DraftOpen:
			qs = append(qs, OpenQuestion{Prompt: d.Prompt, ModelAnswer: d.ModelAnswer})
		}
	}
	return qs
}
