package http

import (
	"net/http"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/service"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
)

type UniversitiesHandler struct {
	SelectionService *service.SelectionService
}

// HandleList returns the user's selections in the order they were added.
//
//	@Summary	List selections
//	@Tags		Universities
//	@Security	CookieAuth
//	@Produce	json
//	@Success	200	{array}		counselsdk.Selection
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/v1/universities [get].
func (h *UniversitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	list, err := h.SelectionService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]counselsdk.Selection, 0, len(list))
	for _, s := range list {
		out = append(out, selectionResponse(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type selectionRequest struct {
	UniversityID string `json:"university_id"`
	ID           string `json:"id"`
	Status       string `json:"status"`
}

// HandleSet shortlists or locks a university.
//
//	@Summary		Set selection
//	@Description	Adds the university or changes its status. "id" is accepted in place of "university_id".
//	@Tags			Universities
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		counselsdk.SelectionRequest	true	"Selection"
//	@Success		200		{object}	counselsdk.Selection
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		422		{object}	httpx.ErrorResponse	"Missing id or unknown status"
//	@Router			/api/v1/universities [post].
func (h *UniversitiesHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	var req selectionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeValidation(w, err.Error())
		return
	}
	universityID := strings.TrimSpace(req.UniversityID)
	if universityID == "" {
		universityID = strings.TrimSpace(req.ID)
	}
	status, err := domain.ParseSelectionStatus(req.Status)
	if err != nil {
		writeValidation(w, err.Error())
		return
	}

	sel, err := h.SelectionService.Set(r.Context(), user.ID, universityID, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, selectionResponse(sel))
}

// HandleDelete removes a university from the list.
//
//	@Summary	Remove selection
//	@Tags		Universities
//	@Security	CookieAuth
//	@Produce	json
//	@Param		university_id	path		string	true	"University id"
//	@Success	200				{object}	httpx.MessageResponse
//	@Failure	404				{object}	httpx.ErrorResponse	"University not found in selection"
//	@Router		/api/v1/universities/{university_id} [delete].
func (h *UniversitiesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r.Context())

	if err := h.SelectionService.Remove(r.Context(), user.ID, r.PathValue("university_id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, "Selection removed")
}
