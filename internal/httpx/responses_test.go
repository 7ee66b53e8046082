package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONSuccess(w, r, map[string]string{"key": "value"}, map[string]any{"total": 10})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Meta    map[string]any    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "value", response.Data["key"])
	assert.Equal(t, "req-1", response.Meta["request_id"])
	assert.EqualValues(t, 10, response.Meta["total"])
}

func TestEnvelope_OmitsEmptyMeta(t *testing.T) {
	write := map[string]func(w http.ResponseWriter, r *http.Request){
		"success": func(w http.ResponseWriter, r *http.Request) { JSONSuccess(w, r, []int{}, nil) },
		"created": func(w http.ResponseWriter, r *http.Request) { JSONSuccessCreated(w, r, map[string]int{"id": 1}) },
		"error": func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "missing", nil)
		},
	}

	for name, fn := range write {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			fn(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.NotContains(t, w.Body.String(), "meta")
			assert.NotContains(t, w.Body.String(), "null")
		})
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{{Field: "email", Message: "email is required"}}

	JSONError(w, httptest.NewRequest(http.MethodPost, "/", nil), http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	assert.Equal(t, details, response.Error.Details)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ana"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "ana", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	r.SetPathValue("id", "12")
	id, err := PathID(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		r.SetPathValue("id", raw)
		_, err := PathID(r, "id")
		assert.Error(t, err, raw)
	}
}
