package http

import (
	"net/http"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/pkg/counselsdk"
	"github.com/globalgrad/counsellor/pkg/httpx"
)

type CatalogHandler struct {
	Catalog *domain.Catalog
}

// HandleList returns the static university catalog.
//
//	@Summary	University catalog
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	counselsdk.University
//	@Router		/api/v1/catalog [get].
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all := h.Catalog.All()
	out := make([]counselsdk.University, 0, len(all))
	for _, u := range all {
		out = append(out, universityResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one catalog entry.
//
//	@Summary	Catalog entry
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"University id"
//	@Success	200	{object}	counselsdk.University
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/v1/catalog/{id} [get].
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Catalog.Lookup(r.PathValue("id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, counselsdk.CodeNotFound, "University not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, universityResponse(u))
}
