package httpserver

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const apiPrefix = "/api/v1"

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:          200,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

func forwardedProto(req *http.Request) string {
	if req.TLS != nil {
		return "https"
	}
	if xf := req.Header.Get("X-Forwarded-Proto"); xf != "" {
		return xf
	}
	return "http"
}

// newProxy forwards to target with the /api/v1 prefix removed, so
// /api/v1/cart/items reaches the cart service as /cart/items.
func newProxy(logger *slog.Logger, name, target string, transport http.RoundTripper) (echo.HandlerFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse %s url: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s url %q must be absolute", name, target)
	}

	p := httputil.NewSingleHostReverseProxy(u)
	p.Transport = transport
	p.FlushInterval = 100 * time.Millisecond

	director := p.Director
	p.Director = func(req *http.Request) {
		host := req.Host
		proto := forwardedProto(req)

		req.URL.Path = stripPrefix(req.URL.Path)
		if req.URL.RawPath != "" {
			req.URL.RawPath = stripPrefix(req.URL.RawPath)
		}
		director(req)

		if req.Header.Get("X-Forwarded-Proto") == "" {
			req.Header.Set("X-Forwarded-Proto", proto)
		}
		if req.Header.Get("X-Forwarded-Host") == "" && host != "" {
			req.Header.Set("X-Forwarded-Host", host)
		}
	}

	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.ErrorContext(r.Context(), "upstream_error", "upstream", name, "path", r.URL.Path, "error", err)
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream unavailable"}`))
	}

	return func(c echo.Context) error {
		p.ServeHTTP(c.Response(), c.Request())
		return nil
	}, nil
}

func stripPrefix(path string) string {
	trimmed := strings.TrimPrefix(path, apiPrefix)
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
