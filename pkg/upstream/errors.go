package upstream

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
)

// CallError captures a non-2xx answer or transport failure from the commerce
// API. It satisfies pkgerrors.UpstreamFailure so the response writer can log
// the upstream diagnostics without this package leaking into the edge.
type CallError struct {
	Operation string
	Status    int
	Body      string
	cause     error
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s: status %d: %s", e.Operation, e.Status, e.Body)
	}
	if e.cause != nil {
		return fmt.Sprintf("upstream %s: %v", e.Operation, e.cause)
	}
	return fmt.Sprintf("upstream %s failed", e.Operation)
}

func (e *CallError) Unwrap() error { return e.cause }

func (e *CallError) UpstreamOperation() string { return e.Operation }
func (e *CallError) UpstreamStatus() int       { return e.Status }
func (e *CallError) UpstreamBody() string      { return e.Body }

// codeForStatus maps upstream HTTP statuses onto gateway error codes. The
// upstream's own validation failures surface as Dependency rather than
// Validation: a request this gateway built and validated should not have been
// malformed, so a 400 means the contract drifted.
func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusUnprocessableEntity:
		return pkgerrors.CodeStateConflict
	case http.StatusTooManyRequests:
		return pkgerrors.CodeRateLimit
	}
	return pkgerrors.CodeDependency
}

func (c *Client) wrapCallError(op string, status int, body string, cause error) error {
	callErr := &CallError{Operation: op, Status: status, Body: body, cause: cause}
	return pkgerrors.Wrap(codeForStatus(status), callErr, fmt.Sprintf("%s failed", op))
}
