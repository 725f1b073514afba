package http

import (
	"errors"
	"net/http"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

const (
	detailEmailTaken       = "The user with this email already exists in the system."
	detailInvalidLogin     = "Incorrect email or password"
	detailSelectionMissing = "University not found in selection"
	detailVoiceConfig      = "LiveKit credentials not configured"
	detailDatabaseConfig   = "Database not configured"
	detailInternal         = "Internal server error"
)

func writeValidation(w http.ResponseWriter, detail string) {
	httpx.WriteError(w, http.StatusUnprocessableEntity, counselsdk.CodeValidation, detail)
}

// writeServiceError maps service and store errors onto responses.
// Unexpected errors are logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, httpx.ErrBadJSON):
		writeValidation(w, err.Error())
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidUniversityID),
		errors.Is(err, domain.ErrInvalidStatus):
		writeValidation(w, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, counselsdk.CodeEmailTaken, detailEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveUser):
		httpx.WriteError(w, http.StatusBadRequest, counselsdk.CodeInvalidLogin, detailInvalidLogin)
	case errors.Is(err, service.ErrGoogleToken):
		httpx.WriteError(w, http.StatusBadRequest, counselsdk.CodeInvalidLogin, "Invalid Google credential")
	case errors.Is(err, service.ErrGoogleDisabled):
		httpx.WriteError(w, http.StatusServiceUnavailable, counselsdk.CodeNotConfigured, "Google login not configured")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteUnauthorized(w)
	case errors.Is(err, service.ErrSelectionNotFound):
		httpx.WriteError(w, http.StatusNotFound, counselsdk.CodeNotFound, detailSelectionMissing)
	case errors.Is(err, service.ErrVoiceUnconfigured):
		httpx.WriteError(w, http.StatusInternalServerError, counselsdk.CodeNotConfigured, detailVoiceConfig)
	case errors.Is(err, store.ErrUnconfigured):
		httpx.WriteError(w, http.StatusServiceUnavailable, counselsdk.CodeUnavailable, detailDatabaseConfig)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, counselsdk.CodeInternal, detailInternal)
	}
}
