package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinemacompanion/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(sample, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content?type=all&min_rating=90&sort=title", nil)

		handler.List(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.EqualValues(t, 2, res.Meta()["total"])
	})

	t.Run("type filter", func(t *testing.T) {
		mockRepo.EXPECT().ListByKind(gomock.Any(), KindMusic).Return([]Item{sample[0]}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content?type=music", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid params", func(t *testing.T) {
		for _, q := range []string{"type=podcast", "sort=random", "year=abc", "min_rating=101"} {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/content?"+q, nil)

			handler.List(w, r)

			res := testutil.RecordHTTPResponse(w)
			assert.Equal(t, http.StatusBadRequest, res.Code, q)
			assert.Equal(t, "VALIDATION_ERROR", res.ErrorCode(), q)
		}
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(2)).Return(sample[1], nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content/2", nil)
		r.SetPathValue("id", "2")

		handler.GetByID(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(Item{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content/9", nil)
		r.SetPathValue("id", "9")

		handler.GetByID(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not an integer", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/content/abc", nil)
		r.SetPathValue("id", "abc")

		handler.GetByID(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
