package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"travelbook/internal/apperror"
)

// Response is the envelope of every successful reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed reply.
type ErrorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Code    apperror.Code `json:"code"`
	Details any           `json:"details,omitempty"`
}

const internalMessage = "Internal server error"

// WriteError turns err into an error envelope. Errors outside the taxonomy are logged and
// answered with a generic 500.
func WriteError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Code == apperror.CodeInternal {
		if log != nil {
			log.WithError(err).Error("request failed")
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: internalMessage,
			Code:    apperror.CodeInternal,
		})
		return
	}

	writeJSON(w, appErr.Code.HTTPStatus(), ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

func writeSuccess(w http.ResponseWriter, message string, data any, statusCode int) {
	writeJSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, h.Log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}), err)
}
