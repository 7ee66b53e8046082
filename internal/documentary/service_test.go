package documentary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/imdb"
	"cinemacompanion/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) SearchDocumentaries(ctx context.Context, count int) (*imdb.SearchResponse, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imdb.SearchResponse), args.Error(1)
}

func TestService_Load_Fetches(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	catalog := store.NewMemory()
	svc := NewService(src, catalog, 20)

	src.On("SearchDocumentaries", mock.Anything, 20).Return(&imdb.SearchResponse{
		Results: []imdb.Title{
			{ID: "tt1", Title: "Planet Earth", Genres: "Nature", Year: "2006", IMDbRating: "9.4"},
			{ID: "tt2", Title: ""},
			{ID: "tt3", Title: "Apollo 11", Year: "2019"},
		},
	}, nil).Once()

	res, err := svc.Load(ctx)

	require.NoError(t, err)
	assert.False(t, res.Degraded)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Planet Earth", res.Items[0].Title)
	assert.Equal(t, 94, res.Items[0].Rating)
	assert.Equal(t, "Apollo 11", res.Items[1].Title)

	t.Run("second load is served from the store", func(t *testing.T) {
		again, err := svc.Load(ctx)

		require.NoError(t, err)
		assert.Equal(t, res.Items, again.Items)
		src.AssertNumberOfCalls(t, "SearchDocumentaries", 1)
	})
}

func TestService_Load_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		notice string
	}{
		{name: "not configured", err: imdb.ErrNotConfigured, notice: noticeNotConfigured},
		{name: "source error", err: errors.New("connection refused"), notice: noticeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(mockSource)
			catalog := store.NewMemory()
			svc := NewService(src, catalog, 20)
			src.On("SearchDocumentaries", mock.Anything, 20).Return(nil, tt.err)

			res, err := svc.Load(context.Background())

			require.NoError(t, err)
			assert.True(t, res.Degraded)
			assert.Equal(t, tt.notice, res.Notice)
			require.Len(t, res.Items, 2)
			assert.Equal(t, "Free Solo", res.Items[0].Title)

			docs, err := catalog.ListByKind(context.Background(), content.KindDocumentary)
			require.NoError(t, err)
			assert.Len(t, docs, 2)
		})
	}
}

func TestService_Load_StoredFirst(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	catalog := store.NewMemory()
	_, err := catalog.Create(ctx, content.NewItem{Title: "Stored", Kind: content.KindDocumentary, Genre: "History"})
	require.NoError(t, err)
	svc := NewService(src, catalog, 20)

	res, err := svc.Load(ctx)

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Stored", res.Items[0].Title)
	src.AssertNotCalled(t, "SearchDocumentaries", mock.Anything, mock.Anything)
}

func TestService_Load_Concurrent(t *testing.T) {
	src := new(mockSource)
	catalog := store.NewMemory()
	svc := NewService(src, catalog, 20)
	src.On("SearchDocumentaries", mock.Anything, 20).Return(&imdb.SearchResponse{
		Results: []imdb.Title{{ID: "tt1", Title: "Planet Earth"}},
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Load(context.Background())
			assert.NoError(t, err)
			assert.Len(t, res.Items, 1)
		}()
	}
	wg.Wait()

	docs, err := catalog.ListByKind(context.Background(), content.KindDocumentary)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

// hangingSource blocks until the caller gives up.
type hangingSource struct{}

func (hangingSource) SearchDocumentaries(ctx context.Context, count int) (*imdb.SearchResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestService_Load_HangingSourceFallsBackWithinDeadline(t *testing.T) {
	catalog := store.NewMemory()
	svc := NewService(hangingSource{}, catalog, 20).WithFetchDeadline(50 * time.Millisecond)

	start := time.Now()
	res, err := svc.Load(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, time.Second)
	assert.True(t, res.Degraded)
	assert.Equal(t, noticeUnavailable, res.Notice)
	require.Len(t, res.Items, 2)
}

func TestService_FetchDeadlineDefault(t *testing.T) {
	svc := NewService(hangingSource{}, store.NewMemory(), 20)
	assert.Equal(t, DefaultFetchDeadline, svc.deadline)

	svc.WithFetchDeadline(0)
	assert.Equal(t, DefaultFetchDeadline, svc.deadline)
}
