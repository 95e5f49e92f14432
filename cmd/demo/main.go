// Command demo exercises a TrustDeck instance end to end: ping, create a
// domain, pseudonymize a freshly minted identifier, look the pseudonym up
// again, and clean up. It is a smoke test for a deployed instance, not part
// of the library.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/trustdeck/trustdeck-client-go/pkg/idx"
	"github.com/trustdeck/trustdeck-client-go/pkg/slogx"
	"github.com/trustdeck/trustdeck-client-go/pkg/trustdeck"
)

type config struct {
	ServiceURL   string
	KeycloakURL  string
	Realm        string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	Domain    string
	LogLevel  string
	LogFormat string
}

func loadConfig() config {
	return config{
		ServiceURL:   os.Getenv("TRUSTDECK_SERVICE_URL"),
		KeycloakURL:  os.Getenv("TRUSTDECK_KEYCLOAK_URL"),
		Realm:        getEnvOrDefault("TRUSTDECK_REALM", "trustdeck"),
		ClientID:     getEnvOrDefault("TRUSTDECK_CLIENT_ID", "trustdeck-client"),
		ClientSecret: os.Getenv("TRUSTDECK_CLIENT_SECRET"), // Optional: public clients have none
		Username:     os.Getenv("TRUSTDECK_USERNAME"),
		Password:     os.Getenv("TRUSTDECK_PASSWORD"),
		Domain:       getEnvOrDefault("TRUSTDECK_DEMO_DOMAIN", "demo"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger := slogx.New(slogx.Config{
		Service: "trustdeck-demo",
		Env:     "dev",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	client, err := trustdeck.NewClient(trustdeck.Config{
		ServiceURL:   cfg.ServiceURL,
		KeycloakURL:  cfg.KeycloakURL,
		Realm:        cfg.Realm,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
	},
		trustdeck.WithLogger(logger),
		trustdeck.WithHTTPClient(&http.Client{
			Timeout:   15 * time.Second,
			Transport: &slogx.Transport{Logger: logger},
		}),
	)
	if err != nil {
		log.Fatalf("failed to initialize client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = slogx.WithContext(ctx, logger)

	if err := run(ctx, client, cfg.Domain); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
	logger.Info("demo completed")
}

func run(ctx context.Context, client *trustdeck.Client, domainName string) error {
	up, err := client.Ping(ctx)
	if err != nil {
		return err
	}
	logger := slogx.FromContext(ctx)
	logger.Info("service reachable", "up", up)

	domain, err := client.Domains().Create(ctx, &trustdeck.Domain{
		Name:      domainName,
		Prefix:    "DEMO-",
		Algorithm: "RANDOM",
	})
	if err != nil {
		return err
	}
	if domain != nil {
		logger.Info("domain ready", "name", domain.Name, "prefix", domain.Prefix)
	}

	pseudonyms := client.Pseudonyms(domainName)

	id := trustdeck.Identifier{ID: idx.New().String(), IDType: "ULID"}
	created, err := pseudonyms.CreateFromIdentifier(ctx, id, false)
	if err != nil {
		return err
	}
	if created != nil {
		logger.Info("pseudonym created", "psn", created.Psn)
	}

	found, err := pseudonyms.GetByIdentifier(ctx, id)
	if err != nil {
		return err
	}
	if found != nil {
		logger.Info("pseudonym retrieved", "psn", found.Psn)
	}

	if _, err := pseudonyms.Delete(ctx, id.ID, id.IDType, ""); err != nil {
		return err
	}

	ok, err := client.Domains().Delete(ctx, domainName, true)
	if err != nil {
		return err
	}
	logger.Info("domain removed", "deleted", ok)
	return nil
}
