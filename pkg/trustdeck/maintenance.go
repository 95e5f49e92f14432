package trustdeck

import (
	"context"
	"fmt"
	"net/http"
)

// Maintenance is the connector for the administrative table and role
// endpoints. These operations require elevated rights on the service.
type Maintenance struct {
	c *Client
}

// ClearTables truncates the pseudonym, domain, and audit event tables, in
// that order. The first failure aborts the sequence and names the table it
// happened on.
func (m *Maintenance) ClearTables(ctx context.Context) error {
	for _, table := range []string{"pseudonym", "domain", "auditevent"} {
		if err := m.clearTable(ctx, table); err != nil {
			return fmt.Errorf("clearing %s table: %w", table, err)
		}
	}
	return nil
}

func (m *Maintenance) clearTable(ctx context.Context, table string) error {
	status, _, err := m.c.do(ctx, "clearing table", http.MethodDelete,
		m.c.endpoint(nil, "api", "pseudonymization", "table", table), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return unexpectedStatus(status)
	}
	return nil
}

// DeleteDomainRoles removes the access roles belonging to a domain from
// the identity provider.
func (m *Maintenance) DeleteDomainRoles(ctx context.Context, domainName string) error {
	status, _, err := m.c.do(ctx, "deleting domain roles", http.MethodDelete,
		m.c.endpoint(nil, "api", "pseudonymization", "roles", domainName), nil)
	if err != nil {
		return fmt.Errorf("deleting roles for domain %q: %w", domainName, err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("deleting roles for domain %q: %w", domainName, unexpectedStatus(status))
	}
	return nil
}

// GetStorage reports the storage usage of a database table. The service
// answers with a plain-text description.
func (m *Maintenance) GetStorage(ctx context.Context, tableName string) (string, error) {
	status, body, err := m.c.do(ctx, "retrieving table storage", http.MethodGet,
		m.c.endpoint(nil, "api", "pseudonymization", "table", tableName, "storage"), nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", unexpectedStatus(status)
	}
	return string(body), nil
}
