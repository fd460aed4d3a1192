package public

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

// formValue accepts a JSON string or number and keeps its textual form.
// null decodes to the empty string.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("expected string or number, got %s", trimmed)
	}
	*v = formValue(number.String())
	return nil
}

func (v *formValue) UnmarshalText(text []byte) error {
	*v = formValue(text)
	return nil
}

type submitSurveyRequest struct {
	Name         formValue `json:"name" form:"name"`
	Email        formValue `json:"email" form:"email"`
	Age          formValue `json:"age" form:"age"`
	Satisfaction formValue `json:"satisfaction" form:"satisfaction"`
	Feedback     formValue `json:"feedback" form:"feedback"`
}

func (r submitSurveyRequest) command() application.SubmitSurveyCommand {
	return application.SubmitSurveyCommand{
		Name:         string(r.Name),
		Email:        string(r.Email),
		Age:          string(r.Age),
		Satisfaction: string(r.Satisfaction),
		Feedback:     string(r.Feedback),
	}
}

type submitSurveyResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

type surveyResultsResponse struct {
	Success bool              `json:"success"`
	Data    domain.Statistics `json:"data"`
}

type apiEndpoints struct {
	SubmitSurvey string `json:"submit_survey"`
	GetResults   string `json:"get_results"`
	HealthCheck  string `json:"health_check"`
}

type apiInfoResponse struct {
	Service       string       `json:"service"`
	Version       string       `json:"version"`
	Endpoints     apiEndpoints `json:"endpoints"`
	Documentation string       `json:"documentation"`
}
