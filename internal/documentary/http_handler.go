package documentary

import (
	"net/http"

	"cinemacompanion/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /api/documentaries
// @Summary List documentaries
// @Description Stored documentaries, loaded from IMDb on first use. A fallback list is served with meta.degraded when IMDb is unavailable.
// @Tags content
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/documentaries [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Load(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	meta := map[string]any{"total": len(res.Items)}
	if res.Degraded {
		meta["degraded"] = true
		meta["notice"] = res.Notice
	}
	httpx.JSONSuccess(w, r, res.Items, meta)
}
