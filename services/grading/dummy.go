package gradingsvc

import (
	"context"
	"fmt"

	"github.com/mwalimu/darasa/core"
)

// dummyService answers every call with fixed content; used where no
// collaborator is reachable (admin CLI, local development).
type dummyService struct{}

var _ core.GradingService = (*dummyService)(nil)

func NewDummyService() core.GradingService {
	return &dummyService{}
}

func (dummyService) GradeOpenQuestion(_ context.Context, _, _, _ string) (core.GradingResult, error) {
	return core.GradingResult{Score: 50, Feedback: "ungradable offline; review manually"}, nil
}

func (dummyService) GenerateQuestions(_ context.Context, topic string, count int) ([]core.QuestionDraft, error) {
	drafts := make([]core.QuestionDraft, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, core.QuestionDraft{
			Kind:        core.DraftOpen,
			Prompt:      fmt.Sprintf("Describe aspect %d of %s.", i+1, topic),
			ModelAnswer: "n/a",
		})
	}
	return drafts, nil
}

func (dummyService) GenerateSummary(_ context.Context, topic, _ string) (string, error) {
	return "Summary of " + topic, nil
}
