package application

import (
	"context"
	"errors"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

// DefaultResultsLimit is the window size used when the caller gives none.
const DefaultResultsLimit = 100

// ErrInvalidSurvey is returned when a submission fails validation.
var ErrInvalidSurvey = errors.New("invalid survey submission")

// SurveyRepository persists and reads survey responses.
// SurveyRepository はアンケート回答の保存と取得を担うポート。
type SurveyRepository interface {
	// Create assigns ID and CreatedAt on the given response and stores it.
	Create(ctx context.Context, response *domain.SurveyResponse) error
	// FindRecent returns at most limit responses, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.SurveyResponse, error)
}

// SubmissionNotifier relays accepted submissions to an external channel.
type SubmissionNotifier interface {
	NotifySubmission(ctx context.Context, response domain.SurveyResponse) error
}

// SurveyCommandService handles writing use-cases.
type SurveyCommandService interface {
	Submit(ctx context.Context, cmd SubmitSurveyCommand) (*domain.SurveyResponse, error)
}

// SurveyQueryService describes survey read use-cases.
// SurveyQueryService は集計結果を返すリーダーモデル。
type SurveyQueryService interface {
	Results(ctx context.Context, limit int) (domain.Statistics, error)
}

// SubmitSurveyCommand captures raw form input.
type SubmitSurveyCommand struct {
	Name         string
	Email        string
	Age          string
	Satisfaction string
	Feedback     string
}

func (c SubmitSurveyCommand) candidate() domain.Candidate {
	return domain.Candidate{
		Name:         c.Name,
		Email:        c.Email,
		Age:          c.Age,
		Satisfaction: c.Satisfaction,
		Feedback:     c.Feedback,
	}.Normalize()
}
