package livekit

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/globalgrad/counsellor/pkg/httpx"
	"github.com/globalgrad/counsellor/pkg/jwtx"
)

const maxWebhookBytes = 1 << 20

// WebhookHandler verifies LiveKit webhooks and forwards them to a Hub.
type WebhookHandler struct {
	keys   jwtx.LiveKitKeys
	hub    *Hub
	logger *slog.Logger
}

func NewWebhookHandler(keys jwtx.LiveKitKeys, hub *Hub, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{keys: keys, hub: hub, logger: logger}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body", "could not read body")
		return
	}

	if err := h.keys.VerifyWebhook(r.Header.Get("Authorization"), body); err != nil {
		h.logger.Warn("rejected webhook", slog.Any("error", err))
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_signature", "invalid webhook signature")
		return
	}

	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid webhook payload")
		return
	}

	h.logger.Debug("webhook received", slog.String("event", ev.Event), slog.String("id", ev.ID))
	h.hub.Handle(ev)
	w.WriteHeader(http.StatusOK)
}
