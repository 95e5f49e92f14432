package trustdeck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Config carries the immutable connection parameters for one TrustDeck
// instance. All fields except ClientSecret are required; public Keycloak
// clients have no secret.
type Config struct {
	// ServiceURL is the base URL of the TrustDeck instance, with or without
	// a trailing slash
	ServiceURL string

	// KeycloakURL is the base URL of the Keycloak server TrustDeck
	// authenticates against
	KeycloakURL string

	// Realm is the Keycloak realm name
	Realm string

	// ClientID identifies this client against Keycloak
	ClientID string

	// ClientSecret is the Keycloak client secret (empty for public clients)
	ClientSecret string

	// Username and Password are the resource-owner credentials for the
	// password grant
	Username string
	Password string
}

func (c Config) validate() error {
	switch {
	case c.ServiceURL == "":
		return errors.New("trustdeck: config is missing the service URL")
	case c.KeycloakURL == "":
		return errors.New("trustdeck: config is missing the Keycloak URL")
	case c.Realm == "":
		return errors.New("trustdeck: config is missing the realm")
	case c.ClientID == "":
		return errors.New("trustdeck: config is missing the client id")
	case c.Username == "":
		return errors.New("trustdeck: config is missing the username")
	case c.Password == "":
		return errors.New("trustdeck: config is missing the password")
	}
	return nil
}

// tokenURL builds the Keycloak token endpoint for the configured realm.
func (c Config) tokenURL() string {
	return strings.TrimSuffix(c.KeycloakURL, "/") + "/realms/" + c.Realm + "/protocol/openid-connect/token"
}

// Client is the root of the TrustDeck client library. It owns the long-lived
// HTTP client and the token service shared by all connectors, and hands out
// the per-resource connectors.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenService
	logger     *slog.Logger
	limiter    *rate.Limiter
}

// Option configures a Client beyond its Config.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout). Connect and
// read timeouts are transport configuration, not client logic; set them here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for diagnostic output. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRateLimit caps outbound requests at limit with the given burst,
// blocking (up to the request context deadline) when the budget is spent.
// The cap covers service calls, not identity-provider round trips.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewClient validates cfg and builds a client. The service base URL is
// normalized once here so that URLs with and without a trailing slash
// produce identical requests.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: strings.TrimSuffix(cfg.ServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The token service gets the unthrottled client: identity-provider round
	// trips don't count against the service rate budget.
	c.tokens = newTokenService(cfg, c.httpClient, c.logger)

	if c.limiter != nil {
		throttled := *c.httpClient
		throttled.Transport = &throttledTransport{base: c.httpClient.Transport, limiter: c.limiter}
		c.httpClient = &throttled
	}

	return c, nil
}

// Tokens exposes the token service, e.g. to pre-authenticate at startup.
func (c *Client) Tokens() *TokenService { return c.tokens }

// Domains returns the connector for domain management operations.
func (c *Client) Domains() *Domains {
	return &Domains{c: c}
}

// Pseudonyms returns the connector for pseudonym operations within the
// given domain.
func (c *Client) Pseudonyms(domainName string) *Pseudonyms {
	return &Pseudonyms{c: c, domain: domainName}
}

// Persons returns the connector for person registration operations.
func (c *Client) Persons() *Persons {
	return &Persons{c: c}
}

// Maintenance returns the connector for database maintenance operations.
func (c *Client) Maintenance() *Maintenance {
	return &Maintenance{c: c}
}

// Ping checks whether the TrustDeck instance is reachable and answering.
// It returns true iff the service responds with status 200.
func (c *Client) Ping(ctx context.Context) (bool, error) {
	status, _, err := c.do(ctx, "pinging TrustDeck", http.MethodGet, c.endpoint(nil, "api", "ping"), nil)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, unexpectedStatus(status)
	}
	return true, nil
}

// throttledTransport wraps a RoundTripper with a token-bucket limiter.
type throttledTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
