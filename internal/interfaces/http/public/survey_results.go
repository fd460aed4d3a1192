package public

import (
	"context"
	"net/http"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/common"
)

func (h *Handler) surveyResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := common.ParseLimit(r.URL.Query().Get("limit"), h.resultsDefaultLimit, h.resultsMaxLimit)

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		stats, err := h.surveyQueries.Results(ctx, limit)
		if err != nil {
			h.logger.WithError(err).Error("集計結果の取得に失敗")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Error retrieving results: "+err.Error())
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyResultsResponse{
			Success: true,
			Data:    stats,
		})
	}
}
