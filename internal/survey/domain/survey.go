package domain

import (
	"strings"
	"time"
)

// SurveyResponse is a single submitted survey as it is stored.
// Records are immutable once written.
type SurveyResponse struct {
	ID           string
	Name         string
	Email        string
	Age          *string
	Satisfaction int
	Feedback     *string
	Timestamp    string
	CreatedAt    time.Time
}

// IsComplete reports whether name, email and satisfaction are all populated.
func (r SurveyResponse) IsComplete() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		r.Satisfaction != 0
}

// OptionalString returns nil for blank input so optional fields are omitted from storage.
func OptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
