package client

import "fmt"

// QueryError describes a non-success HTTP response to a read query.
type QueryError struct {
	// Status is the HTTP status code returned by the Content Lake.
	Status int
	// Body contains the raw response body text for diagnostics.
	Body string
}

func (e *QueryError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("sanity: query failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("sanity: query failed: status %d", e.Status)
}

// MutationError describes a non-success HTTP response to a write.
type MutationError struct {
	// Status is the HTTP status code returned by the Content Lake.
	Status int
	// Body contains the raw response body text for diagnostics.
	Body string
}

func (e *MutationError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("sanity: mutation failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("sanity: mutation failed: status %d", e.Status)
}

// AuthRequiredError is raised locally, before any network call, when an
// operation that needs a bearer credential runs on a token-less client.
type AuthRequiredError struct {
	// Operation names the rejected operation.
	Operation string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("sanity: %s requires a token", e.Operation)
}

// NotFoundError is raised locally by derived operations when a required
// document lookup returns absent.
type NotFoundError struct {
	// ID is the missing document id.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sanity: document %q not found", e.ID)
}
