package trustdeck

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Pseudonyms is the connector for the pseudonym management endpoints,
// bound to one domain at construction.
//
// Benign outcomes (documented "nothing to do" statuses) return a zero value
// with a nil error; documented failures and undocumented status codes return
// a *ResponseError carrying the literal status code.
type Pseudonyms struct {
	c      *Client
	domain string
}

// Domain returns the name of the domain this connector operates in.
func (p *Pseudonyms) Domain() string { return p.domain }

// Create creates a single pseudonym. omitPrefix suppresses the
// domain-specific prefix on the generated value. Status 200 means the
// pseudonym already existed and the stored record is returned; a missing
// domain (404) yields nil without an error.
func (p *Pseudonyms) Create(ctx context.Context, pseudonym *Pseudonym, omitPrefix bool) (*Pseudonym, error) {
	const op = "creating pseudonym"
	q := url.Values{"omitPrefix": {strconv.FormatBool(omitPrefix)}}
	status, body, err := p.c.do(ctx, op, http.MethodPost,
		p.c.endpoint(q, "api", "pseudonymization", "domains", p.domain, "pseudonym"), pseudonym)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		p.c.logger.DebugContext(ctx, "pseudonym insertion skipped, record already present", "domain", p.domain)
		fallthrough
	case http.StatusCreated:
		var created Pseudonym
		if err := decodeBody(op, body, &created); err != nil {
			return nil, err
		}
		return &created, nil
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "domain was not found", "domain", p.domain)
		return nil, nil
	case http.StatusUnprocessableEntity:
		return nil, &ResponseError{Status: status, Message: "insertion of the pseudonym failed"}
	case http.StatusInternalServerError:
		return nil, &ResponseError{Status: status, Message: "pseudonymization of the identifier failed"}
	case http.StatusInsufficientStorage:
		return nil, &ResponseError{Status: status, Message: insufficientSpaceMessage}
	default:
		return nil, unexpectedStatus(status)
	}
}

const insufficientSpaceMessage = "the domain does not provide enough pseudonyms for the request"

// CreateFromIdentifier creates a pseudonym from just an identifier and its
// type, leaving everything else to the domain defaults.
func (p *Pseudonyms) CreateFromIdentifier(ctx context.Context, id Identifier, omitPrefix bool) (*Pseudonym, error) {
	return p.Create(ctx, &Pseudonym{ID: id.ID, IDType: id.IDType}, omitPrefix)
}

// CreateBatch creates pseudonyms in a batch. A missing domain (404) yields
// nil without an error; a failed or aborted batch is an error.
func (p *Pseudonyms) CreateBatch(ctx context.Context, pseudonyms []Pseudonym, omitPrefix bool) ([]Pseudonym, error) {
	const op = "creating a batch of pseudonyms"
	q := url.Values{"omitPrefix": {strconv.FormatBool(omitPrefix)}}
	status, body, err := p.c.do(ctx, op, http.MethodPost,
		p.c.endpoint(q, "api", "pseudonymization", "domains", p.domain, "pseudonyms"), pseudonyms)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusCreated:
		var created []Pseudonym
		if err := decodeBody(op, body, &created); err != nil {
			return nil, err
		}
		return created, nil
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "domain was not found", "domain", p.domain)
		return nil, nil
	case http.StatusUnprocessableEntity:
		return nil, &ResponseError{Status: status, Message: "batch insertion of pseudonyms failed"}
	case http.StatusInternalServerError:
		return nil, &ResponseError{Status: status, Message: "pseudonymization of an identifier failed, batch insertion was aborted"}
	case http.StatusInsufficientStorage:
		return nil, &ResponseError{Status: status, Message: insufficientSpaceMessage}
	default:
		return nil, unexpectedStatus(status)
	}
}

// GetByIdentifier retrieves the pseudonym bound to an identifier and its
// type. A miss (404) yields nil without an error.
func (p *Pseudonyms) GetByIdentifier(ctx context.Context, id Identifier) (*Pseudonym, error) {
	q := url.Values{
		"id":     {id.ID},
		"idType": {id.IDType},
	}
	return p.get(ctx, q)
}

// GetByPsn retrieves the pseudonym record for a psn value. A miss (404)
// yields nil without an error.
func (p *Pseudonyms) GetByPsn(ctx context.Context, psn string) (*Pseudonym, error) {
	return p.get(ctx, url.Values{"psn": {psn}})
}

func (p *Pseudonyms) get(ctx context.Context, q url.Values) (*Pseudonym, error) {
	const op = "retrieving pseudonym"
	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(q, "api", "pseudonymization", "domains", p.domain, "pseudonym"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var found Pseudonym
		if err := decodeBody(op, body, &found); err != nil {
			return nil, err
		}
		return &found, nil
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "no pseudonym was found", "domain", p.domain)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// GetBatch retrieves all pseudonyms in the domain. A skipped retrieval
// (422) yields nil without an error.
func (p *Pseudonyms) GetBatch(ctx context.Context) ([]Pseudonym, error) {
	const op = "retrieving pseudonyms"
	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(nil, "api", "pseudonymization", "domains", p.domain, "pseudonyms"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var found []Pseudonym
		if err := decodeBody(op, body, &found); err != nil {
			return nil, err
		}
		return found, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", p.domain)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "pseudonym retrieval failed", "domain", p.domain)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// GetLinked searches pseudonym pairs along the pseudonym chain between a
// source and a target domain. Zero-valued source parameters are omitted
// from the query. No linkable pseudonyms (404) yields nil without an error.
func (p *Pseudonyms) GetLinked(ctx context.Context, sourceDomain, targetDomain, sourceID, sourceIDType, sourcePsn string) ([][]Pseudonym, error) {
	const op = "retrieving linked pseudonyms"
	q := url.Values{
		"sourceDomain": {sourceDomain},
		"targetDomain": {targetDomain},
	}
	if sourceID != "" {
		q.Set("sourceIdentifier", sourceID)
	}
	if sourceIDType != "" {
		q.Set("sourceIdType", sourceIDType)
	}
	if sourcePsn != "" {
		q.Set("sourcePsn", sourcePsn)
	}

	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(q, "api", "pseudonymization", "domains", "linked-pseudonyms"), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var pairs [][]Pseudonym
		if err := decodeBody(op, body, &pairs); err != nil {
			return nil, err
		}
		return pairs, nil
	case http.StatusForbidden:
		return nil, &ResponseError{Status: status, Message: "missing rights to search linked pseudonyms"}
	case http.StatusNotFound:
		p.c.logger.DebugContext(ctx, "no linkable pseudonyms were found", "source", sourceDomain, "target", targetDomain)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// UpdateByIdentifier updates the validity attributes (validFrom, validTo,
// validityTime) of the pseudonym bound to an identifier. A skipped update
// (422) yields nil without an error.
func (p *Pseudonyms) UpdateByIdentifier(ctx context.Context, id Identifier, update *Pseudonym) (*Pseudonym, error) {
	q := url.Values{
		"id":     {id.ID},
		"idType": {id.IDType},
	}
	return p.update(ctx, q, update, false)
}

// UpdateByPsn updates the validity attributes of the pseudonym record for a
// psn value. A skipped update (422) yields nil without an error.
func (p *Pseudonyms) UpdateByPsn(ctx context.Context, psn string, update *Pseudonym) (*Pseudonym, error) {
	return p.update(ctx, url.Values{"psn": {psn}}, update, false)
}

// UpdateCompleteByIdentifier updates all attributes of the pseudonym bound
// to an identifier. Moving a record into a domain the user has no rights
// for is a 403 failure.
func (p *Pseudonyms) UpdateCompleteByIdentifier(ctx context.Context, id Identifier, update *Pseudonym) (*Pseudonym, error) {
	q := url.Values{
		"id":     {id.ID},
		"idType": {id.IDType},
	}
	return p.update(ctx, q, update, true)
}

// UpdateCompleteByPsn updates all attributes of the pseudonym record for a
// psn value.
func (p *Pseudonyms) UpdateCompleteByPsn(ctx context.Context, psn string, update *Pseudonym) (*Pseudonym, error) {
	return p.update(ctx, url.Values{"psn": {psn}}, update, true)
}

func (p *Pseudonyms) update(ctx context.Context, q url.Values, update *Pseudonym, complete bool) (*Pseudonym, error) {
	const op = "updating pseudonym"
	segments := []string{"api", "pseudonymization", "domains", p.domain, "pseudonym"}
	if complete {
		segments = append(segments, "complete")
	}

	status, body, err := p.c.do(ctx, op, http.MethodPut, p.c.endpoint(q, segments...), update)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated Pseudonym
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return &updated, nil
	case http.StatusForbidden:
		if complete {
			return nil, &ResponseError{Status: status, Message: "missing rights for the target domain of the pseudonym record"}
		}
		return nil, unexpectedStatus(status)
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: "the domain or the pseudonym to update was not found"}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "pseudonym update failed", "domain", p.domain)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// UpdateBatch updates a batch of pseudonyms. A skipped update (422) yields
// nil without an error.
func (p *Pseudonyms) UpdateBatch(ctx context.Context, pseudonyms []Pseudonym) ([]Pseudonym, error) {
	const op = "updating pseudonyms"
	status, body, err := p.c.do(ctx, op, http.MethodPut,
		p.c.endpoint(nil, "api", "pseudonymization", "domains", p.domain, "pseudonyms"), pseudonyms)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var updated []Pseudonym
		if err := decodeBody(op, body, &updated); err != nil {
			return nil, err
		}
		return updated, nil
	case http.StatusNotFound:
		return nil, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", p.domain)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "pseudonym batch update failed", "domain", p.domain)
		return nil, nil
	default:
		return nil, unexpectedStatus(status)
	}
}

// Delete deletes a single pseudonym, identified by an (id, idType) pair, a
// psn value, or both. Supplying neither fails with ErrMissingIdentifier
// before any network call. A skipped deletion (422) yields false without
// an error.
func (p *Pseudonyms) Delete(ctx context.Context, id, idType, psn string) (bool, error) {
	const op = "deleting pseudonym"

	q := url.Values{}
	if id != "" && idType != "" {
		q.Set("id", id)
		q.Set("idType", idType)
	}
	if psn != "" {
		q.Set("psn", psn)
	}
	if len(q) == 0 {
		return false, ErrMissingIdentifier
	}

	status, _, err := p.c.do(ctx, op, http.MethodDelete,
		p.c.endpoint(q, "api", "pseudonymization", "domains", p.domain, "pseudonym"), nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusNoContent:
		return true, nil
	case http.StatusBadRequest:
		return false, &ResponseError{Status: status, Message: "invalid parameters, at least an id and idType or a psn is needed"}
	case http.StatusNotFound:
		return false, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", p.domain)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "pseudonym deletion failed", "domain", p.domain)
		return false, nil
	default:
		return false, unexpectedStatus(status)
	}
}

// DeleteBatch deletes all pseudonyms in the domain. A skipped deletion
// (422) yields false without an error.
func (p *Pseudonyms) DeleteBatch(ctx context.Context) (bool, error) {
	const op = "deleting pseudonyms"
	status, _, err := p.c.do(ctx, op, http.MethodDelete,
		p.c.endpoint(nil, "api", "pseudonymization", "domains", p.domain, "pseudonyms"), nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", p.domain)}
	case http.StatusUnprocessableEntity:
		p.c.logger.DebugContext(ctx, "pseudonym batch deletion failed", "domain", p.domain)
		return false, nil
	default:
		return false, unexpectedStatus(status)
	}
}

// Validate checks a pseudonym against its check digit. The service answers
// with a bare boolean literal; a psn containing characters outside the
// domain alphabet (400) yields false without an error. Domains configured
// without a check digit answer 422, which is a failure.
func (p *Pseudonyms) Validate(ctx context.Context, psn string) (bool, error) {
	const op = "validating pseudonym"
	q := url.Values{"psn": {psn}}
	status, body, err := p.c.do(ctx, op, http.MethodGet,
		p.c.endpoint(q, "api", "pseudonymization", "domains", p.domain, "pseudonym", "validation"), nil)
	if err != nil {
		return false, err
	}

	switch status {
	case http.StatusOK:
		valid, err := strconv.ParseBool(strings.TrimSpace(string(body)))
		if err != nil {
			return false, &TransportError{Op: op, Err: fmt.Errorf("parsing validation response %q: %w", body, err)}
		}
		return valid, nil
	case http.StatusBadRequest:
		p.c.logger.DebugContext(ctx, "psn contains characters outside the domain alphabet", "domain", p.domain)
		return false, nil
	case http.StatusNotFound:
		return false, &ResponseError{Status: status, Message: fmt.Sprintf("the domain %q was not found", p.domain)}
	case http.StatusUnprocessableEntity:
		return false, &ResponseError{Status: status, Message: "the domain is configured without a check digit"}
	default:
		return false, unexpectedStatus(status)
	}
}
