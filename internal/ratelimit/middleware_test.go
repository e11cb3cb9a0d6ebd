package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlerMiddlewareEnforcesLimit(t *testing.T) {
	handler := Handler{
		Limiter: NewMemoryLimiter(),
		Config: Config{
			Key:    func(*http.Request) string { return "static" },
			Window: time.Minute,
			Max:    1,
		},
	}

	counted := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr1 := httptest.NewRecorder()
	counted.ServeHTTP(rr1, req.Clone(req.Context()))
	require.Equal(t, http.StatusOK, rr1.Code)
	require.Equal(t, "1", rr1.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rr1.Header().Get("X-RateLimit-Remaining"))

	rr2 := httptest.NewRecorder()
	counted.ServeHTTP(rr2, req.Clone(req.Context()))
	require.Equal(t, http.StatusTooManyRequests, rr2.Code)
	require.NotEmpty(t, rr2.Header().Get("Retry-After"))
	require.NotEmpty(t, rr2.Header().Get("X-RateLimit-Reset"))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &body))
	require.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestHandlerMiddlewareKeysAreIndependent(t *testing.T) {
	handler := Handler{
		Limiter: NewMemoryLimiter(),
		Config: Config{
			Key:    func(r *http.Request) string { return r.Header.Get("X-Client") },
			Window: time.Minute,
			Max:    1,
		},
	}
	counted := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, client := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Client", client)
		rr := httptest.NewRecorder()
		counted.ServeHTTP(rr, req)
		require.Equalf(t, http.StatusOK, rr.Code, "fresh key %q should be allowed", client)
	}
}

func TestMemoryLimiterWindowRollsOver(t *testing.T) {
	lim := NewMemoryLimiter()
	window := 100 * time.Millisecond

	allowed, _, _, err := lim.Allow(context.Background(), "k", window, 1)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, _, err = lim.Allow(context.Background(), "k", window, 1)
	require.NoError(t, err)
	require.False(t, allowed, "second event inside the window should be rejected")

	time.Sleep(window + 50*time.Millisecond)

	allowed, remaining, _, err := lim.Allow(context.Background(), "k", window, 1)
	require.NoError(t, err)
	require.True(t, allowed, "a fresh window should admit events again")
	require.Equal(t, 0, remaining)
}

func TestMemoryLimiterZeroMaxAllowsEverything(t *testing.T) {
	lim := NewMemoryLimiter()
	for i := 0; i < 3; i++ {
		allowed, _, _, err := lim.Allow(context.Background(), "k", time.Minute, 0)
		require.NoError(t, err)
		require.True(t, allowed)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, time.Duration, int) (bool, int, time.Time, error) {
	return false, 0, time.Time{}, errors.New("limiter down")
}

func TestHandlerMiddlewareFailsOpen(t *testing.T) {
	handler := Handler{
		Limiter: failingLimiter{},
		Config: Config{
			Key:    func(*http.Request) string { return "err" },
			Window: time.Second,
			Max:    1,
		},
	}

	called := false
	handler.OnError = func(error) { called = true }

	counted := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	counted.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, "handler should proceed when the limiter errors")
	require.True(t, called, "OnError callback should be invoked")
}
