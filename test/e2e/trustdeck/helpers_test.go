package trustdeck_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end tests against real infrastructure. The token tests start a
 * Keycloak container and authenticate against its master realm with the
 * built-in admin-cli client, so no realm import is needed. The service
 * tests additionally need a running TrustDeck instance and read its
 * coordinates from the environment.
 *
 * Both require Docker and are skipped unless TRUSTDECK_E2E is set.
 */

const (
	keycloakImage = "quay.io/keycloak/keycloak:26.0"

	keycloakAdminUsername = "admin"
	keycloakAdminPassword = "Admin123!"
)

// requireE2E skips the test unless the suite was explicitly enabled.
func requireE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("TRUSTDECK_E2E") == "" {
		t.Skip("set TRUSTDECK_E2E=1 to run end-to-end tests")
	}
}

// setupKeycloakContainer starts Keycloak in dev mode and returns its base URL.
func setupKeycloakContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        keycloakImage,
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"start-dev"},
		Env: map[string]string{
			"KC_BOOTSTRAP_ADMIN_USERNAME": keycloakAdminUsername,
			"KC_BOOTSTRAP_ADMIN_PASSWORD": keycloakAdminPassword,
		},
		WaitingFor: wait.ForHTTP("/realms/master").
			WithPort("8080/tcp").
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}
