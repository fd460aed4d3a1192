package public

import (
	"net/http"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/common"
)

func (h *Handler) apiInfoHandler() http.HandlerFunc {
	info := apiInfoResponse{
		Service: "Simple Survey System API",
		Version: h.serviceVersion,
		Endpoints: apiEndpoints{
			SubmitSurvey: "/api/submit-survey (POST)",
			GetResults:   "/api/survey-results (GET)",
			HealthCheck:  "/health (GET)",
		},
		Documentation: "See README.md for usage instructions",
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, info)
	}
}
