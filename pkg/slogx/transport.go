package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/trustdeck/trustdeck-client-go/pkg/idx"
)

// Transport is an http.RoundTripper that logs outbound requests and tags
// each with a request ID, generating one when the caller didn't set the
// X-Request-ID header.
type Transport struct {
	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Logger receives one entry per round trip. nil means slog.Default().
	Logger *slog.Logger
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = idx.New().String()
		// Per RoundTripper contract the request must not be mutated.
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", reqID)
	}

	logger := t.Logger
	if logger == nil {
		logger = FromContext(req.Context())
	}
	logger = logger.With(
		"req_id", reqID,
		"method", req.Method,
		"url", req.URL.Redacted(),
	)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Error("http_request_failed", "duration_ms", duration, "error", err)
		return nil, err
	}

	logger.Info("http_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
