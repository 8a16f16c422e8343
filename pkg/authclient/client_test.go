package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokens(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		ck, err := r.Cookie("refreshToken")
		if err != nil || ck.Value != "old-refresh" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid refresh token"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			AccessExp:    100,
			RefreshExp:   200,
			Role:         "customer",
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL + "/")

	res, err := c.RefreshTokens(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", res.AccessToken)
	assert.Equal(t, "new-refresh", res.RefreshToken)
	assert.Equal(t, "customer", res.Role)

	_, err = c.RefreshTokens(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorContains(t, err, "invalid refresh token")
}

func TestRefreshTokens_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(RefreshResponse{AccessToken: "a", RefreshToken: "r", Role: "admin"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithRetry(3, time.Millisecond))
	res, err := c.RefreshTokens(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "admin", res.Role)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRefreshTokens_DoesNotRetryRejection(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithRetry(3, time.Millisecond))
	_, err := c.RefreshTokens(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}
