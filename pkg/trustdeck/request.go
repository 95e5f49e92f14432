package trustdeck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// endpoint builds a request URL from the normalized base URL, escaped path
// segments, and an optional query. Boolean query values are serialized as
// "true"/"false" literals by the callers (strconv.FormatBool).
func (c *Client) endpoint(query url.Values, segments ...string) string {
	var b bytes.Buffer
	b.WriteString(c.baseURL)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

// do executes one authenticated round trip: fetch a valid token (refreshing
// if needed), marshal the optional body, send, and read the full response.
// It returns the status code and body; interpreting the status is the
// caller's job. Network and decoding failures come back as *TransportError,
// token failures as *AuthError or *RefreshError, all unchanged by callers.
func (c *Client) do(ctx context.Context, op, method, urlStr string, body any) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("encoding request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logger.DebugContext(ctx, "trustdeck request",
		"method", method,
		"url", urlStr,
		"status", resp.StatusCode,
	)
	return resp.StatusCode, data, nil
}

// decodeBody unmarshals a successful response body into target. A body the
// service claims is JSON but isn't counts as a transport failure.
func decodeBody(op string, data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response body: %w", err)}
	}
	return nil
}
