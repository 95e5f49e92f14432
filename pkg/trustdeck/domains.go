package trustdeck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Domains is the connector for the domain management endpoints of the ACE
// pseudonymization service.
//
// Benign outcomes (documented "nothing to do" statuses) return a zero value
// with a nil error; documented failures and undocumented status codes return
// a *ResponseError carrying the literal status code.
type Domains struct {
	c *Client
}

// GetAll retrieves the full domain hierarchy.
func (d *Domains) GetAll(ctx context.Context) ([]Domain, error) {
	const op = "retrieving all domains"
	status, body, err := d.c.do(ctx, op, http.MethodGet,
		d.c.endpoint(nil, "api", "pseudonymization", "experimental", "domains", "hierarchy"), nil)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, unexpectedStatus(status)
	}

	var domains []Domain
	if err := decodeBody(op, body, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// Get retrieves a domain by name.
func (d *Domains) Get(ctx context.Context, domainName string) (*Domain, error) {
	const op = "retrieving domain"
	q := url.Values{"name": {domainName}}
	status, body, err := d.c.do(ctx, op, http.MethodGet,
		d.c.endpoint(q, "api", "pseudonymization", "domain"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var dom Domain
		if err := decodeBody(op, body, &dom); err != nil {
			return nil, err
		}
		return &dom, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", domainName)}
	default:
		return nil, unexpectedStatus(status)
	}
}

// GetAttribute retrieves a single attribute of a domain as its string
// representation. Unrecognized attribute names and insufficient read rights
// both yield an empty string with a nil error.
func (d *Domains) GetAttribute(ctx context.Context, domainName, attributeName string) (string, error) {
	const op = "retrieving domain attribute"
	status, body, err := d.c.do(ctx, op, http.MethodGet,
		d.c.endpoint(nil, "api", "pseudonymization", "domains", domainName, attributeName), nil)
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK:
		var dom Domain
		if err := decodeBody(op, body, &dom); err != nil {
			return "", err
		}
		return domainAttribute(&dom, attributeName), nil
	case http.StatusNotFound:
		return "", &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", domainName)}
	case http.StatusForbidden:
		d.c.logger.DebugContext(ctx, "insufficient rights to read domain attribute",
			"domain", domainName, "attribute", attributeName)
		return "", nil
	default:
		return "", unexpectedStatus(status)
	}
}

// Create creates a new domain from a reduced attribute set. Status 200
// means the domain already existed and is returned as-is; a 422 means the
// creation was skipped and yields nil without an error.
func (d *Domains) Create(ctx context.Context, domain *Domain) (*Domain, error) {
	return d.create(ctx, domain, d.c.endpoint(nil, "api", "pseudonymization", "domain"))
}

// CreateComplete creates a new domain with the full attribute set. Outcome
// mapping is identical to Create.
func (d *Domains) CreateComplete(ctx context.Context, domain *Domain) (*Domain, error) {
	return d.create(ctx, domain, d.c.endpoint(nil, "api", "pseudonymization", "domain", "complete"))
}

func (d *Domains) create(ctx context.Context, domain *Domain, urlStr string) (*Domain, error) {
	const op = "creating domain"
	status, body, err := d.c.do(ctx, op, http.MethodPost, urlStr, domain)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		d.c.logger.DebugContext(ctx, "domain to insert was already present", "domain", domain.Name)
		fallthrough
	case http.StatusCreated:
		var created Domain
		if err := decodeBody(op, body, &created); err != nil {
			return nil, err
		}
		return &created, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the parent domain %q was not found", domain.SuperDomainName)}
	case http.StatusNotAcceptable:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain name %q violates URI-validity", domain.Name)}
	case http.StatusUnprocessableEntity:
		d.c.logger.DebugContext(ctx, "creating the domain failed", "domain", domain.Name)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Update updates an existing domain with a reduced attribute set. A 422
// means the update was skipped and yields nil without an error.
func (d *Domains) Update(ctx context.Context, domainName string, domain *Domain) (*Domain, error) {
	const op = "updating domain"
	q := url.Values{"name": {domainName}}
	status, body, err := d.c.do(ctx, op, http.MethodPut,
		d.c.endpoint(q, "api", "pseudonymization", "domain"), domain)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated Domain
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain to update (%s) was not found", domainName)}
	case http.StatusUnprocessableEntity:
		d.c.logger.DebugContext(ctx, "updating the domain failed", "domain", domainName)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// UpdateComplete updates an existing domain with the full attribute set,
// optionally applying inheritable changes recursively to sub-domains.
func (d *Domains) UpdateComplete(ctx context.Context, domainName string, domain *Domain, recursive bool) (*Domain, error) {
	const op = "updating domain"
	q := url.Values{
		"name":      {domainName},
		"recursive": {strconv.FormatBool(recursive)},
	}
	status, body, err := d.c.do(ctx, op, http.MethodPut,
		d.c.endpoint(q, "api", "pseudonymization", "domain", "complete"), domain)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated Domain
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	case http.StatusBadRequest:
		return nil, &ResponseError{Status: status, Message: "the provided salt value was invalid"}
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain to update (%s) was not found", domainName)}
	case http.StatusNotAcceptable:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the new domain name %q violates URI-validity", domainName)}
	case http.StatusUnprocessableEntity:
		d.c.logger.DebugContext(ctx, "updating the domain failed", "domain", domainName)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Delete deletes a domain, optionally including its sub-domains. A 500
// means the deletion was aborted server-side and yields false without an
// error.
func (d *Domains) Delete(ctx context.Context, domainName string, recursive bool) (bool, error) {
	const op = "deleting domain"
	q := url.Values{
		"name":      {domainName},
		"recursive": {strconv.FormatBool(recursive)},
	}
	status, _, err := d.c.do(ctx, op, http.MethodDelete,
		d.c.endpoint(q, "api", "pseudonymization", "domain"), nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, &ResponseError{Status: status, Message: fmt.Sprintf("the domain to delete (%s) was not found", domainName)}
	case http.StatusInternalServerError:
		d.c.logger.DebugContext(ctx, "deleting the domain failed", "domain", domainName)
		return false, nil
	default:
		return false, unexpectedStatus(status)
	}
}

// UpdateSalt replaces the salt value of a domain. A 422 means the update
// was skipped and yields nil without an error.
func (d *Domains) UpdateSalt(ctx context.Context, domainName, newSalt string, allowEmpty bool) (*Domain, error) {
	const op = "updating salt"
	q := url.Values{
		"salt":       {newSalt},
		"allowEmpty": {strconv.FormatBool(allowEmpty)},
	}
	status, body, err := d.c.do(ctx, op, http.MethodPut,
		d.c.endpoint(q, "api", "pseudonymization", "domains", domainName, "salt"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated Domain
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	case http.StatusBadRequest:
		return nil, &ResponseError{Status: status, Message: "the provided salt value was invalid"}
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain for the new salt value (%s) was not found", domainName)}
	case http.StatusUnprocessableEntity:
		d.c.logger.DebugContext(ctx, "updating the salt failed", "domain", domainName)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}
