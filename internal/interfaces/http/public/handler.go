package public

import (
	"context"
	"sync"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/common"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger              logrus.FieldLogger
	surveyCommands      application.SurveyCommandService
	surveyQueries       application.SurveyQueryService
	notifier            application.SubmissionNotifier
	requestTimeout      time.Duration
	resultsDefaultLimit int
	resultsMaxLimit     int
	serviceVersion      string
	notifications       sync.WaitGroup
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger              logrus.FieldLogger
	SurveyCommands      application.SurveyCommandService
	SurveyQueries       application.SurveyQueryService
	Notifier            application.SubmissionNotifier
	RequestTimeout      time.Duration
	ResultsDefaultLimit int
	ResultsMaxLimit     int
	ServiceVersion      string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = common.DefaultRequestTimeout
	}
	defaultLimit := cfg.ResultsDefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = application.DefaultResultsLimit
	}

	return &Handler{
		logger:              logger,
		surveyCommands:      cfg.SurveyCommands,
		surveyQueries:       cfg.SurveyQueries,
		notifier:            cfg.Notifier,
		requestTimeout:      timeout,
		resultsDefaultLimit: defaultLimit,
		resultsMaxLimit:     cfg.ResultsMaxLimit,
		serviceVersion:      cfg.ServiceVersion,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api", h.apiInfoHandler())
	r.Post("/api/submit-survey", h.submitSurveyHandler())
	r.Get("/api/survey-results", h.surveyResultsHandler())
}

// WaitNotifications blocks until in-flight submission notifications finish or ctx ends.
func (h *Handler) WaitNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.notifications.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
