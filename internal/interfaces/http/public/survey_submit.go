package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/interfaces/http/common"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
	"github.com/sirupsen/logrus"
)

const (
	submitSuccessMessage    = "Survey submitted successfully! Thank you for your response."
	validationFailedMessage = "Please fill in all required fields correctly."
	invalidBodyMessage      = "Invalid request body."
)

func (h *Handler) submitSurveyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitSurveyRequest
		if err := common.DecodeBody(r, &req); err != nil {
			h.logger.WithError(err).Debug("リクエストボディの解析に失敗")
			common.WriteError(h.logger, w, http.StatusBadRequest, invalidBodyMessage)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		response, err := h.surveyCommands.Submit(ctx, req.command())
		if errors.Is(err, application.ErrInvalidSurvey) {
			common.WriteError(h.logger, w, http.StatusBadRequest, validationFailedMessage)
			return
		}
		if err != nil {
			h.logger.WithError(err).Error("アンケート回答の保存に失敗")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Error occurred: "+err.Error())
			return
		}

		h.logger.WithFields(logrus.Fields{
			"document_id":  response.ID,
			"satisfaction": response.Satisfaction,
		}).Info("アンケート回答を保存")

		if h.notifier != nil {
			h.notifications.Add(1)
			go h.notifySubmission(*response)
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, submitSurveyResponse{
			Success:    true,
			Message:    submitSuccessMessage,
			DocumentID: response.ID,
		})
	}
}

// notifySubmission runs detached from the request; failures are only logged.
func (h *Handler) notifySubmission(response domain.SurveyResponse) {
	defer h.notifications.Done()
	if err := h.notifier.NotifySubmission(context.Background(), response); err != nil {
		h.logger.WithError(err).WithField("document_id", response.ID).Warn("新着回答の通知に失敗")
	}
}
