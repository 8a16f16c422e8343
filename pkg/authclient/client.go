package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jwthelp "github.com/Skotchmaster/shoe_shop/pkg/jwt"
	"github.com/Skotchmaster/shoe_shop/pkg/retry"
)

// ErrRejected means the auth service refused the refresh token.
var ErrRejected = errors.New("refresh token rejected")

// RefreshResponse mirrors the auth service /auth/refresh body.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	AccessExp    int64  `json:"accessExp"`
	RefreshExp   int64  `json:"refreshExp"`
	Role         string `json:"role"`
}

// Client calls the auth service. Network failures and 5xx answers are retried
// a few times; a rejected token is not.
type Client struct {
	refreshURL string
	http       *http.Client
	attempts   int
	backoff    retry.Config
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithRetry(attempts int, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.backoff = retry.Config{InitialDelay: initialDelay, MaxDelay: time.Second}
	}
}

func NewClient(authServiceURL string, opts ...Option) *Client {
	c := &Client{
		refreshURL: strings.TrimRight(authServiceURL, "/") + "/auth/refresh",
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		attempts: 2,
		backoff:  retry.Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	b := retry.NewBackoff(c.backoff)
	for attempt := 1; ; attempt++ {
		out, err := c.refresh(ctx, refreshToken)
		if err == nil || errors.Is(err, ErrRejected) || attempt >= c.attempts {
			return out, err
		}
		if b.Wait(ctx) != nil {
			return nil, err
		}
	}
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: jwthelp.RefreshCookie, Value: refreshToken})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call auth service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode < http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %d %s", ErrRejected, resp.StatusCode, upstreamMessage(resp.Body))
	default:
		return nil, fmt.Errorf("auth service answered %d: %s", resp.StatusCode, upstreamMessage(resp.Body))
	}

	var out RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, errors.New("refresh response without tokens")
	}
	return &out, nil
}

// upstreamMessage reads the {"message": ...} error body, falling back to the raw text.
func upstreamMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
