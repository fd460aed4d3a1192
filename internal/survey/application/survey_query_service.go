package application

import (
	"context"
	"fmt"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

// surveyQueryService implements SurveyQueryService.
type surveyQueryService struct {
	repo SurveyRepository
}

// NewSurveyQueryService creates a new SurveyQueryService.
func NewSurveyQueryService(repo SurveyRepository) SurveyQueryService {
	return &surveyQueryService{repo: repo}
}

func (s *surveyQueryService) Results(ctx context.Context, limit int) (domain.Statistics, error) {
	if limit <= 0 {
		limit = DefaultResultsLimit
	}

	window, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to retrieve survey responses: %w", err)
	}
	return domain.Summarize(window), nil
}
