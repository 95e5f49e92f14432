/*
Package trustdeck provides a typed client for the TrustDeck ACE
pseudonymization service.

# Overview

The client covers the service's REST API: hierarchical pseudonymization
domains, the pseudonyms stored in them, person registration, and a small set
of administrative maintenance operations. Authentication against the
service's Keycloak identity provider happens transparently; callers never
see a token.

# Getting Started

Create a Client from a Config and pull connectors off it:

	client, err := trustdeck.NewClient(trustdeck.Config{
		ServiceURL:   "https://ace.example.org",
		KeycloakURL:  "https://keycloak.example.org",
		Realm:        "trustdeck",
		ClientID:     "ace-client",
		ClientSecret: "secret",
		Username:     "alice",
		Password:     "password",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Reachability check, no authentication involved beyond the token.
	up, err := client.Ping(ctx)

	// Domain management.
	domain, err := client.Domains().Get(ctx, "study-a")

	// Pseudonyms live inside a domain.
	psn, err := client.Pseudonyms("study-a").GetByPsn(ctx, "STA-1K4C9X2")

# Token Handling

Every operation obtains a valid access token before the request goes out.
The client performs an OAuth2 password grant on first use and refreshes the
token once its remaining lifetime drops to 60 seconds or below. Refresh is
single-flight: concurrent callers block on one refresh instead of racing
the identity provider. If the provider omits the token lifetime, the expiry
is read from the access token's JWT exp claim.

# Error Handling

Operations distinguish three failure layers:

  - *TransportError: the request never completed, or the response body was
    not what the service promised (network failure, malformed JSON).
  - *ResponseError: the service answered with a documented failure status
    or one the API does not document. Status carries the literal code.
  - *AuthError and *RefreshError: the identity provider rejected the
    initial grant or a token refresh.

Statuses the API documents as benign non-results, like a lookup miss or a
skipped insertion, are not errors: the operation returns its zero value
(nil, false, "") with a nil error and logs the cause at debug level.

	psn, err := client.Pseudonyms("study-a").GetByIdentifier(ctx, id)
	if err != nil {
		var respErr *trustdeck.ResponseError
		if errors.As(err, &respErr) && respErr.Status == http.StatusForbidden {
			// missing rights
		}
		return err
	}
	if psn == nil {
		// no record bound to this identifier
	}

# Concurrency

A Client is safe for concurrent use. Connectors are cheap handles over the
shared Client; create them per call site or keep them around, both work.
*/
package trustdeck
