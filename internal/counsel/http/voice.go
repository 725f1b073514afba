package http

import (
	"net/http"

	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
)

type VoiceHandler struct {
	VoiceService *service.VoiceService
}

// ServeHTTP issues a LiveKit token for the user's counsellor room.
//
//	@Summary	Voice token
//	@Tags		Voice
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	counselsdk.VoiceToken
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	500	{object}	httpx.ErrorResponse	"LiveKit credentials not configured"
//	@Router		/api/v1/voice/token [get].
func (h *VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	tok, err := h.VoiceService.Issue(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, counselsdk.VoiceToken{
		Token:    tok.Token,
		RoomName: tok.RoomName,
		URL:      tok.URL,
	})
}
