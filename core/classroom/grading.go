package classroom

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/volatiletech/null/v8"
)

// autoGrade scores a fresh submission on an auto-graded test. MCQs are scored
// by rule; open questions are delegated to the grading collaborator. Questions
// whose grading call fails are excluded from the mean, never scored 0 or 100;
// when every question fails the submission stays ungraded.
func (svc *Service) autoGrade(ctx context.Context, mat Material, sub *Submission) {
	if mat.Type != MaterialTest || !mat.AutoGrade {
		return
	}

	scores := make([]int, 0, len(mat.Questions))
	feedback := make([]string, 0, len(mat.Questions))
	for i, q := range mat.Questions {
		var ans Answer
		if i < len(sub.Answers) {
			ans = sub.Answers[i]
		}

		switch q := q.(type) {
		case MCQQuestion:
			if ans.Selected.Valid && ans.Selected.Int == q.CorrectIndex {
				scores = append(scores, 100)
			} else {
				scores = append(scores, 0)
			}
		case OpenQuestion:
			res, err := svc.grader.GradeOpenQuestion(ctx, q.Prompt, q.ModelAnswer, ans.Text)
			if err != nil {
				svc.logger.Warn(fmt.Sprintf("grading question %d of %q failed, leaving it out of the score", i+1, mat.Title), err)
				continue
			}
			scores = append(scores, res.Score)
			if res.Feedback != "" {
				feedback = append(feedback, res.Feedback)
			}
		}
	}
	if len(scores) == 0 {
		return // pending manual review
	}

	var sum int
	for _, s := range scores {
		sum += s
	}
	sub.AIScore = null.IntFrom(int(math.Round(float64(sum) / float64(len(scores)))))
	sub.AIFeedback = strings.Join(feedback, "\n")
}

// PendingReview returns the material's submissions that still lack a manual
// teacher grade, oldest first (stored order).
func PendingReview(mat Material) []Submission {
	pending := make([]Submission, 0, len(mat.Submissions))
	for _, sub := range mat.Submissions {
		if !sub.TeacherGrade.Valid {
			pending = append(pending, sub)
		}
	}
	return pending
}
