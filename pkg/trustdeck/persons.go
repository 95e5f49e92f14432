package trustdeck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Persons is the connector for the person registration endpoints.
type Persons struct {
	c *Client
}

// Create registers a new person record. An already-registered person (409)
// yields nil without an error.
func (p *Persons) Create(ctx context.Context, person *Person) (*Person, error) {
	const op = "creating person"
	status, body, err := p.c.do(ctx, op, http.MethodPost,
		p.c.endpoint(nil, "api", "registration", "person"), person)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusCreated:
		var created Person
		if err := decodeBody(op, body, &created); err != nil {
			return nil, err
		}
		return &created, nil
	case http.StatusBadRequest:
		return nil, &ResponseError{Status: status, Message: "the person record is invalid"}
	case http.StatusConflict:
		p.c.logger.DebugContext(ctx, "person is already registered")
		return nil, nil
	case http.StatusUnprocessableEntity:
		return nil, &ResponseError{Status: status, Message: "registration of the person failed"}
	default:
		return nil, unexpectedStatus(status)
	}
}

// Search performs a free-text search over the registered persons. A partial
// result set (206) is returned like a full one. No matches (404) yields nil
// without an error.
func (p *Persons) Search(ctx context.Context, query string) ([]Person, error) {
	const op = "searching persons"
	q := url.Values{"q": {query}}
	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(q, "api", "registration", "person"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusPartialContent:
		p.c.logger.DebugContext(ctx, "person search returned a partial result set")
		fallthrough
	case http.StatusOK:
		var found []Person
		if err := decodeBody(op, body, &found); err != nil {
			return nil, err
		}
		return found, nil
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "no matching persons were found")
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Get retrieves the person bound to an identifier and its type. A miss
// (404) yields nil without an error.
func (p *Persons) Get(ctx context.Context, id Identifier) (*Person, error) {
	const op = "retrieving person"
	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(identifierQuery(id), "api", "registration", "person"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var found Person
		if err := decodeBody(op, body, &found); err != nil {
			return nil, err
		}
		return &found, nil
	case http.StatusBadRequest:
		return nil, &ResponseError{Status: status, Message: "invalid parameters, an identifier and idType are needed"}
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "no person was found", "idType", id.IDType)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Update replaces the person record bound to an identifier. A skipped
// update (422) yields nil without an error.
func (p *Persons) Update(ctx context.Context, id Identifier, person *Person) (*Person, error) {
	const op = "updating person"
	status, body, err := p.c.do(ctx, op, http.MethodPut,
		p.c.endpoint(identifierQuery(id), "api", "registration", "person"), person)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated Person
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the person with idType %q was not found", id.IDType)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "person update failed", "idType", id.IDType)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Delete removes the person record bound to an identifier. A skipped
// deletion (422) yields false without an error.
func (p *Persons) Delete(ctx context.Context, id Identifier) (bool, error) {
	const op = "deleting person"
	status, _, err := p.c.do(ctx, op, http.MethodDelete,
		p.c.endpoint(identifierQuery(id), "api", "registration", "person"), nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, &ResponseError{Status: status, Message: fmt.Sprintf("the person with idType %q was not found", id.IDType)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "person deletion failed", "idType", id.IDType)
		return false, nil
	default:
		return false, unexpectedStatus(status)
	}
}

func identifierQuery(id Identifier) url.Values {
	return url.Values{
		"identifier": {id.ID},
		"idType":     {id.IDType},
	}
}
