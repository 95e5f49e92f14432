package trustdeck

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// tokenEndpoint serves the Keycloak token endpoint path for the test realm,
// counting requests and recording the last grant type it saw.
type tokenEndpoint struct {
	calls     atomic.Int64
	lastGrant atomic.Value
	respond   func(w http.ResponseWriter, r *http.Request)
}

func (te *tokenEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/realms/test-realm/protocol/openid-connect/token" {
		http.NotFound(w, r)
		return
	}
	_ = r.ParseForm()
	te.calls.Add(1)
	te.lastGrant.Store(r.PostFormValue("grant_type"))

	if te.respond != nil {
		te.respond(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"bearer","expires_in":3600,"refresh_token":"refresh-%d"}`,
		te.calls.Load(), te.calls.Load())
}

func newTestTokenService(t *testing.T, te *tokenEndpoint) *TokenService {
	t.Helper()

	server := httptest.NewServer(te)
	t.Cleanup(server.Close)

	cfg := Config{
		ServiceURL:  "http://service.invalid",
		KeycloakURL: server.URL,
		Realm:       "test-realm",
		ClientID:    "test-client",
		Username:    "tester",
		Password:    "secret",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newTokenService(cfg, &http.Client{Timeout: 5 * time.Second}, logger)
}

func TestTokenPasswordGrant(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{}
	svc := newTestTokenService(t, te)

	token, err := svc.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-1", token)
	require.Equal(t, "password", te.lastGrant.Load())
	require.EqualValues(t, 1, te.calls.Load())

	// A second call reuses the stored token without a round trip.
	token, err = svc.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-1", token)
	require.EqualValues(t, 1, te.calls.Load())
}

func TestTokenRefreshMargin(t *testing.T) {
	t.Parallel()

	t.Run("above margin keeps the token", func(t *testing.T) {
		te := &tokenEndpoint{}
		svc := newTestTokenService(t, te)
		svc.token = &oauth2.Token{
			AccessToken:  "current",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(refreshMargin + time.Second),
		}

		token, err := svc.Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "current", token)
		require.EqualValues(t, 0, te.calls.Load())
	})

	t.Run("at or below margin refreshes", func(t *testing.T) {
		te := &tokenEndpoint{}
		svc := newTestTokenService(t, te)
		svc.token = &oauth2.Token{
			AccessToken:  "stale",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(refreshMargin - time.Second),
		}

		token, err := svc.Token(context.Background())
		require.NoError(t, err)
		require.Equal(t, "token-1", token)
		require.Equal(t, "refresh_token", te.lastGrant.Load())
		require.EqualValues(t, 1, te.calls.Load())
	})
}

func TestTokenRefreshSingleFlight(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{}
	svc := newTestTokenService(t, te)
	svc.token = &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Minute),
	}

	const goroutines = 16
	var wg sync.WaitGroup
	tokens := make([]string, goroutines)
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = svc.Token(context.Background())
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, te.calls.Load())
	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "token-1", tokens[i])
	}
}

func TestTokenAuthError(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{respond: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Invalid user credentials"}`)
	}}
	svc := newTestTokenService(t, te)

	_, err := svc.Token(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	// The failed grant must not be cached: the next call retries.
	_, err = svc.Token(context.Background())
	require.ErrorAs(t, err, &authErr)
	require.EqualValues(t, 2, te.calls.Load())
}

func TestTokenRefreshError(t *testing.T) {
	t.Parallel()

	te := &tokenEndpoint{respond: func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Session not active"}`)
	}}
	svc := newTestTokenService(t, te)
	svc.token = &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "dead-refresh",
		Expiry:       time.Now().Add(-time.Minute),
	}

	_, err := svc.Token(context.Background())
	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
}

func TestWithExpiryFallback(t *testing.T) {
	t.Parallel()

	t.Run("expiry present is kept", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour)
		tok := withExpiryFallback(&oauth2.Token{AccessToken: "x", Expiry: expiry})
		require.Equal(t, expiry, tok.Expiry)
	})

	t.Run("expiry filled from exp claim", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": exp.Unix(),
			"sub": "tester",
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		tok := withExpiryFallback(&oauth2.Token{AccessToken: signed})
		require.Equal(t, exp.Unix(), tok.Expiry.Unix())
	})

	t.Run("opaque token stays without expiry", func(t *testing.T) {
		tok := withExpiryFallback(&oauth2.Token{AccessToken: "not-a-jwt"})
		require.True(t, tok.Expiry.IsZero())
	})
}
