package gradingsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/mwalimu/darasa/core"
)

// endpoints of the generative grading/content collaborator
const (
	gradeOpenPath         = "/v1/grade-open-question"
	generateQuestionsPath = "/v1/generate-questions"
	generateSummaryPath   = "/v1/generate-summary"
)

type httpService struct {
	client  *http.Client
	baseURL string
	logger  core.Logger
}

var _ core.GradingService = (*httpService)(nil)

func NewHTTPService(logger core.Logger) *httpService {
	return &httpService{
		client:  &http.Client{Timeout: core.Conf.Grading.Timeout},
		baseURL: core.Conf.Grading.URL,
		logger:  logger,
	}
}

func (svc *httpService) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encoding grading request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building grading request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling %s", path)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("%s: collaborator returned %s", path, res.Status)
	}
	return errors.Wrapf(json.NewDecoder(res.Body).Decode(out), "decoding %s response", path)
}

func (svc *httpService) GradeOpenQuestion(ctx context.Context, question, modelAnswer, studentAnswer string) (core.GradingResult, error) {
	payload := struct {
		Question      string `json:"question"`
		ModelAnswer   string `json:"model_answer"`
		StudentAnswer string `json:"student_answer"`
	}{question, modelAnswer, studentAnswer}

	var res core.GradingResult
	if err := svc.post(ctx, gradeOpenPath, payload, &res); err != nil {
		return core.GradingResult{}, err
	}
	if res.Score < 0 || res.Score > 100 {
		return core.GradingResult{}, errors.Errorf("collaborator returned score %d out of range", res.Score)
	}
	return res, nil
}

func (svc *httpService) GenerateQuestions(ctx context.Context, topic string, count int) ([]core.QuestionDraft, error) {
	payload := struct {
		Topic string `json:"topic"`
		Count int    `json:"count"`
	}{topic, count}

	var res struct {
		Questions []core.QuestionDraft `json:"questions"`
	}
	if err := svc.post(ctx, generateQuestionsPath, payload, &res); err != nil {
		return nil, err
	}
	svc.logger.Debug(fmt.Sprintf("collaborator drafted %d questions on %q", len(res.Questions), topic))
	return res.Questions, nil
}

func (svc *httpService) GenerateSummary(ctx context.Context, topic, source string) (string, error) {
	payload := struct {
		Topic  string `json:"topic"`
		Source string `json:"source"`
	}{topic, source}

	var res struct {
		Summary string `json:"summary"`
	}
	if err := svc.post(ctx, generateSummaryPath, payload, &res); err != nil {
		return "", err
	}
	return res.Summary, nil
}
