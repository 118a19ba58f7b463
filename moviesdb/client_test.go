package moviesdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock records backoff waits instead of sleeping.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *fakeClock) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	base := []Option{WithBaseURL(server.URL), WithClock(clock)}

	client, err := New(
		StaticCredentials{Key: "test-key", Host: DefaultHost},
		zerolog.Nop(),
		append(base, opts...)...,
	)
	require.NoError(t, err)
	return client, clock
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr string
	}{
		{name: "valid", creds: StaticCredentials{Key: "k", Host: DefaultHost}},
		{name: "missing key", creds: StaticCredentials{Host: DefaultHost}, wantErr: "API key is required"},
		{name: "missing host", creds: StaticCredentials{Key: "k"}, wantErr: "API host is required"},
		{name: "nil credentials", creds: nil, wantErr: "API key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.creds, zerolog.Nop())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://"+DefaultHost, client.baseURL)
		})
	}
}

func TestAuthHeaders(t *testing.T) {
	var gotKey, gotHost string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		w.Write([]byte(`{"results":{"id":"tt0000270"}}`))
	}))

	_, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, DefaultHost, gotHost)
}

func TestTitleByID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles/tt0000270", r.URL.Path)
		assert.Equal(t, "base_info", r.URL.Query().Get("info"))
		w.Write([]byte(`{"results":{"id":"tt0000270","titleText":{"text":"Example"}}}`))
	}))

	title, err := client.TitleByID(context.Background(), "tt0000270", Query{"info": "base_info"})
	require.NoError(t, err)
	assert.Equal(t, "tt0000270", title.ID)
	require.NotNil(t, title.TitleText)
	assert.Equal(t, "Example", title.TitleText.Text)
}

func TestInvalidIDFailsBeforeDispatch(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.TitleByID(context.Background(), "0000270", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Zero(t, requests, "no request may be issued for an invalid id")

	_, err = client.ActorByID(context.Background(), "tt0000270")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Zero(t, requests)
}

func TestInvalidGenreFailsBeforeDispatch(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"results":[]}`))
	}))

	it := client.Titles(Query{"genre": "action"})
	assert.False(t, it.Next(context.Background()))
	require.Error(t, it.Err())
	assert.True(t, errors.Is(it.Err(), ErrInvalidParameter))
	assert.Zero(t, requests, "validation must run before any transport call")
}

func TestRetryOnRateLimit(t *testing.T) {
	attempts := 0
	client, clock := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"results":{"id":"tt0000270"}}`))
	}), WithBackoff(BackoffPolicy{Base: time.Second, MaxRetries: 3, MaxDelay: 30 * time.Second}))

	title, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.NoError(t, err)
	assert.Equal(t, "tt0000270", title.ID)
	assert.Equal(t, 3, attempts)

	// Two waits, doubling.
	require.Len(t, clock.sleeps, 2)
	assert.Equal(t, time.Second, clock.sleeps[0])
	assert.Equal(t, 2*time.Second, clock.sleeps[1])
}

func TestRetryBudgetExhausted(t *testing.T) {
	attempts := 0
	client, clock := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}), WithBackoff(BackoffPolicy{Base: time.Second, MaxRetries: 2, MaxDelay: 30 * time.Second}))

	_, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetryBudgetExhausted))
	assert.True(t, errors.Is(err, ErrServer), "the last failure must stay observable")
	assert.Equal(t, 3, attempts, "initial attempt plus two retries")
	assert.Len(t, clock.sleeps, 2)

	var failure *Error
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, http.StatusServiceUnavailable, failure.Status)
}

func TestProviderErrorIsNotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"error":{"code":"INVALID_PARAMETER","message":"unknown title","details":"tt99"}}`))
	}))

	_, err := client.TitleByID(context.Background(), "tt0000099", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPI))
	assert.Equal(t, 1, attempts, "provider errors are terminal")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INVALID_PARAMETER", apiErr.Code)
	assert.Equal(t, "unknown title", apiErr.Message)
}

func TestMalformedResponseIsNotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"unexpected":true}`))
	}))

	_, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Equal(t, 1, attempts)
}

func TestNotFoundStatusSurfacesProviderError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no such actor","details":""}}`))
	}))

	_, err := client.ActorByID(context.Background(), "nm0000001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPI))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestObserverOutcome(t *testing.T) {
	var outcomes []Outcome
	observer := ObserverFunc(func(o Outcome) { outcomes = append(outcomes, o) })

	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"results":{"id":"tt0000270"}}`))
	}),
		WithObserver(observer),
		WithBackoff(BackoffPolicy{Base: time.Millisecond, MaxRetries: 3, MaxDelay: time.Second}),
	)

	_, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, EndpointTitleByID, outcomes[0].Endpoint)
	assert.Equal(t, 2, outcomes[0].Attempts)
	assert.Equal(t, http.StatusOK, outcomes[0].FinalStatus)
	assert.Equal(t, time.Millisecond, outcomes[0].Elapsed, "elapsed equals the recorded backoff wait under the fake clock")
}

func TestRateLimiterIsConsulted(t *testing.T) {
	reservations := 0
	limiter := reserveFunc(func(ctx context.Context, cost int) error {
		reservations += cost
		return nil
	})

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"id":"tt0000270"}}`))
	}), WithRateLimiter(limiter))

	_, err := client.TitleByID(context.Background(), "tt0000270", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, reservations)
}

type reserveFunc func(context.Context, int) error

func (f reserveFunc) Reserve(ctx context.Context, cost int) error { return f(ctx, cost) }

func TestSeasons(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles/seasons/tt0944947", r.URL.Path)
		w.Write([]byte(`{"results":8}`))
	}))

	n, err := client.Seasons(context.Background(), "tt0944947")
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestUtilStringsSkipNull(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/title/utils/genres", r.URL.Path)
		w.Write([]byte(`{"results":[null,"Action","Adult","Adventure"]}`))
	}))

	genres, err := client.GenreList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Adult", "Adventure"}, genres)
}

func TestTitlesByIDs(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/titles/tt0000001":
			w.Write([]byte(`{"results":{"id":"tt0000001"}}`))
		case "/titles/tt0000002":
			w.Write([]byte(`{"results":{"id":"tt0000002"}}`))
		default:
			w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"nope","details":""}}`))
		}
	}))

	titles, err := client.TitlesByIDs(context.Background(), []string{"tt0000001", "tt0000002"}, nil)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "tt0000001", titles["tt0000001"].ID)
	assert.Equal(t, "tt0000002", titles["tt0000002"].ID)

	_, err = client.TitlesByIDs(context.Background(), []string{"tt0000001", "bogus"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
