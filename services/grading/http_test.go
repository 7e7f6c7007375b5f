package gradingsvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwalimu/darasa/core"
)

func newTestService(handler http.HandlerFunc) (*httpService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &httpService{client: srv.Client(), baseURL: srv.URL}, srv
}

func TestGradeOpenQuestion(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc, srv := newTestService(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, gradeOpenPath, r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"score": 80, "feedback": "decent"}`))
		})
		defer srv.Close()

		res, err := svc.GradeOpenQuestion(context.Background(), "why?", "because", "so")
		assert.NoError(t, err)
		assert.Equal(t, core.GradingResult{Score: 80, Feedback: "decent"}, res)
	})

	t.Run("collaborator failure surfaces as error, never as a score", func(t *testing.T) {
		svc, srv := newTestService(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		})
		defer srv.Close()

		_, err := svc.GradeOpenQuestion(context.Background(), "why?", "because", "so")
		assert.Error(t, err)
	})

	t.Run("out-of-range score rejected", func(t *testing.T) {
		svc, srv := newTestService(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"score": 250}`))
		})
		defer srv.Close()

		_, err := svc.GradeOpenQuestion(context.Background(), "why?", "because", "so")
		assert.Error(t, err)
	})
}

func TestGenerateQuestions(t *testing.T) {
	svc, srv := newTestService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, generateQuestionsPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"questions": [
			{"kind": "MCQ", "prompt": "pick", "options": ["a", "b"], "correct_index": 1},
			{"kind": "OPEN", "prompt": "why?", "model_answer": "because"}
		]}`))
	})
	defer srv.Close()
	svc.logger = nopLogger{}

	drafts, err := svc.GenerateQuestions(context.Background(), "waves", 2)
	assert.NoError(t, err)
	assert.Len(t, drafts, 2)
	assert.Equal(t, core.DraftMCQ, drafts[0].Kind)
	assert.Equal(t, "because", drafts[1].ModelAnswer)
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
