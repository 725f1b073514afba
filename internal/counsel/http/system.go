package http

import (
	"context"
	"net/http"
	"time"

	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
)

// RootHandler godoc
//
//	@Summary	Welcome
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	httpx.MessageResponse
//	@Router		/ [get].
func RootHandler(projectName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, "Welcome to "+projectName+" API")
	}
}

// DatabaseHealthHandler godoc
//
//	@Summary	Database health
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	counselsdk.DatabaseHealth
//	@Failure	503	{object}	httpx.ErrorResponse
//	@Router		/health/db [get].
func DatabaseHealthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, counselsdk.CodeUnavailable, "database unavailable: "+err.Error())
			return
		}
		httpx.WriteJSON(w, http.StatusOK, counselsdk.DatabaseHealth{Status: "ok", Database: "connected"})
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	counselsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := counselsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	counselsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	counselsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	bus events.Bus,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &counselsdk.HealthChecks{
			Database: "ok",
			Events:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// An unconfigured database is a supported mode, not a failure.
		if !store.IsConfigured(st) {
			checks.Database = "not configured"
		} else if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if p, ok := bus.(pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				checks.Events = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		response := counselsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
