package common

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// MessageResponse is the envelope for responses that carry only a status message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger logrus.FieldLogger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.WithError(err).Error("JSON エンコードに失敗")
	}
}

// WriteError writes a {success:false, message} envelope.
func WriteError(logger logrus.FieldLogger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, MessageResponse{Success: false, Message: message})
}
