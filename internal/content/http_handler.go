package content

import (
	"errors"
	"net/http"
	"strconv"

	"cinemacompanion/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type listParams struct {
	Search    string `json:"search" validate:"max=200"`
	Type      string `json:"type" validate:"omitempty,oneof=all documentary music"`
	Genre     string `json:"genre" validate:"max=100"`
	Year      int    `json:"year" validate:"gte=0,lte=9999"`
	MinRating int    `json:"min_rating" validate:"gte=0,lte=100"`
	Sort      string `json:"sort" validate:"omitempty,oneof=title year rating"`
}

func parseListParams(r *http.Request) (listParams, []httpx.ErrorDetail) {
	q := r.URL.Query()
	p := listParams{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Genre:  q.Get("genre"),
		Sort:   q.Get("sort"),
	}

	var details []httpx.ErrorDetail
	for name, dst := range map[string]*int{"year": &p.Year, "min_rating": &p.MinRating} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: name, Message: name + " must be an integer"})
			continue
		}
		*dst = v
	}
	if len(details) > 0 {
		return p, details
	}
	return p, httpx.ValidateStruct(p)
}

// List handles GET /api/content
// @Summary Browse the catalog
// @Tags content
// @Produce json
// @Param search query string false "Case-insensitive match on title, description and genre"
// @Param type query string false "all, documentary or music"
// @Param genre query string false "Exact genre"
// @Param year query int false "Release year"
// @Param min_rating query int false "Minimum rating (x10)"
// @Param sort query string false "title, year or rating"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/content [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	p, details := parseListParams(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	kind, _ := ParseKind(p.Type)
	items, err := h.service.Browse(r.Context(), Query{
		Search:    p.Search,
		Kind:      kind,
		Genre:     p.Genre,
		Year:      p.Year,
		MinRating: p.MinRating,
		Sort:      p.Sort,
	})
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, items, map[string]any{"total": len(items)})
}

// GetByID handles GET /api/content/{id}
// @Summary Get a catalog item
// @Tags content
// @Produce json
// @Param id path int true "Item id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/content/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid content id", nil)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Content not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, item, nil)
}
