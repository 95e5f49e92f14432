package trustdeck

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// refreshMargin is the remaining token lifetime below which authenticate
// refreshes before handing out the token.
const refreshMargin = 60 * time.Second

// TokenService supplies a non-expired bearer token to any number of
// concurrent callers, initializing and refreshing it transparently.
//
// The first call performs an OAuth2 password grant against the Keycloak
// token endpoint; later calls reuse the stored token and refresh it when
// its remaining lifetime drops to refreshMargin or below. Initialization
// and refresh are single-flight: concurrent callers block on one network
// round trip and all observe its result.
type TokenService struct {
	oauth      oauth2.Config
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token *oauth2.Token
}

func newTokenService(cfg Config, httpClient *http.Client, logger *slog.Logger) *TokenService {
	return &TokenService{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.tokenURL(),
			},
		},
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Token returns a valid bearer token, performing the initial password grant
// or a refresh when needed. It never returns a token whose remaining
// lifetime is at or below refreshMargin without attempting a refresh first.
func (s *TokenService) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	if tok := s.token; tok != nil && time.Until(tok.Expiry) > refreshMargin {
		value := tok.AccessToken
		s.mu.RUnlock()
		return value, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock: another goroutine may
	// have initialized or refreshed in the meantime.
	if s.token != nil && time.Until(s.token.Expiry) > refreshMargin {
		return s.token.AccessToken, nil
	}

	// The oauth2 package picks its HTTP client out of the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	if s.token == nil {
		tok, err := s.oauth.PasswordCredentialsToken(ctx, s.username, s.password)
		if err != nil {
			return "", &AuthError{Err: err}
		}
		s.token = withExpiryFallback(tok)
		s.logger.DebugContext(ctx, "acquired access token", "expires_at", s.token.Expiry)
		return s.token.AccessToken, nil
	}

	// Force a round trip to the token endpoint: a TokenSource seeded with
	// only the refresh token considers the access token expired.
	src := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: s.token.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", &RefreshError{Err: err}
	}
	s.token = withExpiryFallback(tok)
	s.logger.DebugContext(ctx, "refreshed access token", "expires_at", s.token.Expiry)
	return s.token.AccessToken, nil
}

// withExpiryFallback fills in a missing expiry from the access token's JWT
// exp claim. The claim is read without signature verification; it only
// schedules the next refresh, it grants nothing.
func withExpiryFallback(tok *oauth2.Token) *oauth2.Token {
	if !tok.Expiry.IsZero() {
		return tok
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		return tok
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tok.Expiry = exp.Time
	}
	return tok
}
