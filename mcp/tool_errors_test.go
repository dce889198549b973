package mcp

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Purple-Horizons/sanity-mcp/client"
)

func TestClassifyToolErrorAuthRequired(t *testing.T) {
	t.Parallel()

	env := classifyToolError(&client.AuthRequiredError{Operation: "publish document"})
	if env.ErrorCode != "auth_required" {
		t.Fatalf("error code: %q", env.ErrorCode)
	}
	if !strings.Contains(env.Detail, "SANITY_TOKEN") {
		t.Fatalf("detail should name the remedy: %q", env.Detail)
	}
	if env.Retryable {
		t.Fatalf("auth errors are not retryable")
	}
}

func TestClassifyToolErrorNotFound(t *testing.T) {
	t.Parallel()

	env := classifyToolError(&client.NotFoundError{ID: "drafts.post-1"})
	if env.ErrorCode != "not_found" {
		t.Fatalf("error code: %q", env.ErrorCode)
	}
	if env.DocumentID != "drafts.post-1" {
		t.Fatalf("document id: %q", env.DocumentID)
	}
}

func TestClassifyToolErrorHTTPStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err       error
		code      string
		status    int
		retryable bool
	}{
		{&client.QueryError{Status: http.StatusBadRequest, Body: "bad groq"}, "http_400", http.StatusBadRequest, false},
		{&client.QueryError{Status: http.StatusServiceUnavailable, Body: "down"}, "http_503", http.StatusServiceUnavailable, true},
		{&client.MutationError{Status: http.StatusConflict, Body: "conflict"}, "http_409", http.StatusConflict, false},
		{&client.MutationError{Status: http.StatusTooManyRequests, Body: "slow down"}, "http_429", http.StatusTooManyRequests, true},
	}
	for _, tc := range cases {
		env := classifyToolError(tc.err)
		if env.ErrorCode != tc.code || env.HTTPStatus != tc.status || env.Retryable != tc.retryable {
			t.Fatalf("classify(%v) = %+v", tc.err, env)
		}
	}
}

func TestClassifyToolErrorGeneric(t *testing.T) {
	t.Parallel()

	env := classifyToolError(fmt.Errorf("id is required"))
	if env.ErrorCode != "invalid_input" {
		t.Fatalf("error code: %q", env.ErrorCode)
	}
	env = classifyToolError(fmt.Errorf("connection refused"))
	if env.ErrorCode != "tool_error" {
		t.Fatalf("error code: %q", env.ErrorCode)
	}
}

func TestToolErrorRendersJSONEnvelope(t *testing.T) {
	t.Parallel()

	err := toolError{Envelope: toolErrorEnvelope{ErrorCode: "not_found", DocumentID: "x"}}
	msg := err.Error()
	for _, want := range []string{`"error_code":"not_found"`, `"document_id":"x"`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("envelope missing %q: %s", want, msg)
		}
	}
}
