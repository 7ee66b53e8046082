// Package imdb is a client for the IMDb-API documentary search.
package imdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinemacompanion/internal/platform/metrics"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://imdb-api.com"
	breakerName    = "imdb-api"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("imdb: api key not configured")

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RPS        float64
	MaxRetries int
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	breaker    *gobreaker.CircuitBreaker[*SearchResponse]
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		breaker: gobreaker.NewCircuitBreaker[*SearchResponse](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
				metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			},
		}),
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// SearchResponse matches API/AdvancedSearch.
type SearchResponse struct {
	Results      []Title `json:"results"`
	ErrorMessage string  `json:"errorMessage"`
}

// Title is one AdvancedSearch result. The API is loose about types, so
// numeric fields are kept as Text.
type Title struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Year        Text   `json:"year"`
	Image       string `json:"image"`
	Genres      string `json:"genres"`
	IMDbRating  Text   `json:"imDbRating"`
	RuntimeMins Text   `json:"runtimeMins"`
	Plot        string `json:"plot"`
	Directors   string `json:"directors"`
}

// Text accepts a JSON string, number or null.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

// SearchDocumentaries returns the top rated documentaries with at least 1000 votes.
func (c *Client) SearchDocumentaries(ctx context.Context, count int) (*SearchResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/en/API/AdvancedSearch/%s?title_type=documentary&num_votes=1000,&sort=user_rating,desc&count=%s",
		c.baseURL, url.PathEscape(c.apiKey), strconv.Itoa(count))

	return c.breaker.Execute(func() (*SearchResponse, error) {
		var res SearchResponse
		if err := c.get(ctx, u, &res); err != nil {
			return nil, err
		}
		if res.ErrorMessage != "" {
			return nil, fmt.Errorf("imdb: %s", res.ErrorMessage)
		}
		return &res, nil
	})
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// 1x, 2x, 4x the base backoff
			wait := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, url string, target any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}
