package recommend

import (
	"errors"
	"net/http"

	"cinemacompanion/internal/httpx"
	"cinemacompanion/internal/user"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// ForUser handles GET /api/recommendations/{userId}
// @Summary Recommendations for a user
// @Tags recommendations
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/recommendations/{userId} [get]
func (h *HTTPHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathID(r, "userId")
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid user id", nil)
		return
	}

	items, err := h.service.ForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, items, map[string]any{"total": len(items)})
}

// Scored handles GET /api/recommendations/{userId}/scored
func (h *HTTPHandler) Scored(w http.ResponseWriter, r *http.Request) {
	userID, err := httpx.PathID(r, "userId")
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid user id", nil)
		return
	}

	scored, err := h.service.ScoredForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, scored, map[string]any{"total": len(scored)})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, user.ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
