package classroom

import (
	"context"
	"errors"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/darasa/core"
)

func TestSubmissionGrade(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		want Grade
	}{
		{name: "ungraded", sub: Submission{}, want: Grade{State: GradeUngraded}},
		{name: "auto only", sub: Submission{AIScore: null.IntFrom(60)}, want: Grade{State: GradeAuto, Score: 60}},
		{
			name: "manual overrides auto, no blending",
			sub:  Submission{AIScore: null.IntFrom(60), TeacherGrade: null.IntFrom(91)},
			want: Grade{State: GradeManual, Score: 91},
		},
		{name: "manual zero still overrides", sub: Submission{AIScore: null.IntFrom(60), TeacherGrade: null.IntFrom(0)}, want: Grade{State: GradeManual, Score: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Grade(); got != tt.want {
				t.Errorf("Grade() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func autoGradedTest() Material {
	return Material{
		ID:        "m1",
		Type:      MaterialTest,
		Title:     "Quiz",
		AutoGrade: true,
		Questions: Questions{
			MCQQuestion{Prompt: "q1", Options: []string{"a", "b"}, CorrectIndex: 0},
			MCQQuestion{Prompt: "q2", Options: []string{"a", "b"}, CorrectIndex: 1},
			OpenQuestion{Prompt: "q3", ModelAnswer: "because"},
		},
	}
}

func TestAutoGrade(t *testing.T) {
	answers := []Answer{
		{Selected: null.IntFrom(0)}, // correct
		{Selected: null.IntFrom(0)}, // wrong
		{Text: "some reasoning"},
	}

	t.Run("mcq by rule, open delegated, mean rounded", func(t *testing.T) {
		grader := newGraderStub()
		grader.results["q3"] = core.GradingResult{Score: 80, Feedback: "decent"}
		svc := NewService(&stubStore{}, newStubBus(), grader, nopLogger{})

		sub := Submission{StudentID: "s1", Answers: answers}
		svc.autoGrade(context.Background(), autoGradedTest(), &sub)

		if got := sub.Grade(); got != (Grade{State: GradeAuto, Score: 60}) {
			t.Errorf("Grade() = %+v, want AUTO 60", got) // round((100+0+80)/3)
		}
		if sub.AIFeedback != "decent" {
			t.Errorf("AIFeedback = %q, want %q", sub.AIFeedback, "decent")
		}
	})

	t.Run("failed question excluded from the mean", func(t *testing.T) {
		grader := newGraderStub()
		grader.errs["q3"] = errors.New("collaborator down")
		svc := NewService(&stubStore{}, newStubBus(), grader, nopLogger{})

		sub := Submission{StudentID: "s1", Answers: answers}
		svc.autoGrade(context.Background(), autoGradedTest(), &sub)

		if got := sub.Grade(); got != (Grade{State: GradeAuto, Score: 50}) {
			t.Errorf("Grade() = %+v, want AUTO 50", got) // round((100+0)/2); never 0 or 100 for q3
		}
	})

	t.Run("all questions failing leaves the submission ungraded", func(t *testing.T) {
		grader := newGraderStub()
		grader.errs["q3"] = errors.New("collaborator down")
		svc := NewService(&stubStore{}, newStubBus(), grader, nopLogger{})

		mat := autoGradedTest()
		mat.Questions = Questions{mat.Questions[2]} // open question only
		sub := Submission{StudentID: "s1", Answers: []Answer{{Text: "hm"}}}
		svc.autoGrade(context.Background(), mat, &sub)

		if got := sub.Grade(); got.State != GradeUngraded {
			t.Errorf("Grade().State = %s, want UNGRADED", got.State)
		}
	})

	t.Run("no auto-grading without the flag", func(t *testing.T) {
		grader := newGraderStub()
		svc := NewService(&stubStore{}, newStubBus(), grader, nopLogger{})

		mat := autoGradedTest()
		mat.AutoGrade = false
		sub := Submission{StudentID: "s1", Answers: answers}
		svc.autoGrade(context.Background(), mat, &sub)

		if sub.AIScore.Valid {
			t.Errorf("AIScore = %v, want unset", sub.AIScore)
		}
		if grader.calls != 0 {
			t.Errorf("grader called %d times, want 0", grader.calls)
		}
	})
}

func TestPendingReview(t *testing.T) {
	mat := Material{
		Submissions: []Submission{
			{StudentID: "s1"},
			{StudentID: "s2", AIScore: null.IntFrom(40)},
			{StudentID: "s3", AIScore: null.IntFrom(70), TeacherGrade: null.IntFrom(85)},
		},
	}
	pending := PendingReview(mat)
	if len(pending) != 2 {
		t.Fatalf("PendingReview() returned %d submissions, want 2", len(pending))
	}
	if pending[0].StudentID != "s1" || pending[1].StudentID != "s2" {
		t.Errorf("PendingReview() = %s, %s; want s1, s2", pending[0].StudentID, pending[1].StudentID)
	}
}
