// Package memory keeps survey responses in process memory.
// Data is lost on restart; it backs local runs and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
	"github.com/google/uuid"
)

// ErrClosed is returned once the store has been closed.
var ErrClosed = errors.New("memory store closed")

// Store is an in-memory SurveyRepository safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	responses []domain.SurveyResponse
	closed    bool
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Surveys() application.SurveyRepository {
	return s
}

func (s *Store) Create(ctx context.Context, response *domain.SurveyResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if response == nil {
		return errors.New("survey response is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	response.ID = uuid.NewString()
	response.CreatedAt = s.now().UTC()
	s.responses = append(s.responses, *response)
	return nil
}

// FindRecent returns responses newest first. Among equal write times the later insert wins.
func (s *Store) FindRecent(ctx context.Context, limit int) ([]domain.SurveyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	result := make([]domain.SurveyResponse, 0, len(s.responses))
	for i := len(s.responses) - 1; i >= 0; i-- {
		result = append(result, s.responses[i])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
