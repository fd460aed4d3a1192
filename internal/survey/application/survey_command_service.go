package application

import (
	"context"
	"fmt"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
)

func NewSurveyCommandService(repo SurveyRepository) SurveyCommandService {
	return &surveyCommandService{repo: repo, now: time.Now}
}

type surveyCommandService struct {
	repo SurveyRepository
	now  func() time.Time
}

func (s *surveyCommandService) Submit(ctx context.Context, cmd SubmitSurveyCommand) (*domain.SurveyResponse, error) {
	candidate := cmd.candidate()
	if !domain.Validate(candidate) {
		return nil, ErrInvalidSurvey
	}
	satisfaction, _ := domain.ParseSatisfaction(candidate.Satisfaction)

	response := &domain.SurveyResponse{
		Name:         candidate.Name,
		Email:        candidate.Email,
		Age:          domain.OptionalString(candidate.Age),
		Satisfaction: satisfaction,
		Feedback:     domain.OptionalString(candidate.Feedback),
		Timestamp:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save survey response: %w", err)
	}
	return response, nil
}
