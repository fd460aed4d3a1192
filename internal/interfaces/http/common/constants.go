package common

import "time"

const (
	// MaxSurveyRequestBody limits submission bodies.
	MaxSurveyRequestBody = 1 << 20
	// DefaultRequestTimeout bounds store calls made on behalf of a request.
	DefaultRequestTimeout = 5 * time.Second
)
