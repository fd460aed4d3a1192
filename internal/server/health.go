package server

import (
	"context"
	"net/http"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/common"
)

// healthHandler はプロセスの生存のみを返す。ストアには触れない。
func (s *Server) healthHandler() http.HandlerFunc {
	payload := map[string]string{
		"status":  "healthy",
		"service": s.serviceName,
		"version": s.serviceVersion,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(s.logger, w, http.StatusOK, payload)
	}
}

// readinessHandler はストアへの疎通確認を行い、監視系からのヘルスチェック要求に応える。
func (s *Server) readinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
