package documentary

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinemacompanion/internal/store"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_List_Degraded(t *testing.T) {
	src := new(mockSource)
	src.On("SearchDocumentaries", mock.Anything, 20).Return(nil, errors.New("timeout"))
	handler := NewHTTPHandler(NewService(src, store.NewMemory(), 20))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/documentaries", nil)

	handler.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
		Meta    map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, true, body.Meta["degraded"])
	assert.Equal(t, noticeUnavailable, body.Meta["notice"])
}
