package core

import "context"

// Question draft kinds returned by the content-authoring calls.
const (
	DraftMCQ  = "MCQ"
	DraftOpen = "OPEN"
)

type (
	// GradingResult is the outcome of grading one open question.
	GradingResult struct {
		Score    int    `json:"score"` // 0 - 100
		Feedback string `json:"feedback"`
	}

	// QuestionDraft is a machine-authored question, not yet attached to a material.
	QuestionDraft struct {
		Kind         string   `json:"kind"` // DraftMCQ or DraftOpen
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options,omitempty"`
		CorrectIndex int      `json:"correct_index,omitempty"`
		ModelAnswer  string   `json:"model_answer,omitempty"`
	}

	// GradingService is the external generative grading/content collaborator.
	// It is consumed, never implemented, by the classroom core.
	GradingService interface {
		GradeOpenQuestion(ctx context.Context, question, modelAnswer, studentAnswer string) (GradingResult, error)
		GenerateQuestions(ctx context.Context, topic string, count int) ([]QuestionDraft, error)
		GenerateSummary(ctx context.Context, topic, source string) (string, error)
	}
)
