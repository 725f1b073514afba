package http

import (
	"net/http"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/pkg/httpx"
)

type OnboardingHandler struct {
	OnboardingService *service.OnboardingService
}

// HandleGet returns the questionnaire, or null before the first submission.
//
//	@Summary	Get onboarding
//	@Tags		Onboarding
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{object}	counselsdk.Onboarding	"Row or null"
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	503	{object}	httpx.ErrorResponse	"Database not configured"
//	@Router		/api/v1/onboarding [get].
func (h *OnboardingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	o, ok, err := h.OnboardingService.Get(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingResponse(o))
}

// HandlePut creates or updates the questionnaire and marks the user
// onboarded. On update only the keys present in the body change.
//
//	@Summary	Save onboarding
//	@Tags		Onboarding
//	@Security	CookieAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		counselsdk.OnboardingAnswers	true	"Answers"
//	@Success	200		{object}	counselsdk.Onboarding
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	422		{object}	httpx.ErrorResponse	"Invalid body"
//	@Router		/api/v1/onboarding [put].
func (h *OnboardingHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	var patch domain.OnboardingPatch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		writeValidation(w, err.Error())
		return
	}

	o, err := h.OnboardingService.Upsert(r.Context(), user.ID, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingResponse(o))
}
