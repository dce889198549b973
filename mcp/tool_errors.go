package mcp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Purple-Horizons/sanity-mcp/client"
)

type toolErrorEnvelope struct {
	ErrorCode  string `json:"error_code"`
	Detail     string `json:"detail,omitempty"`
	Retryable  bool   `json:"retryable"`
	HTTPStatus int    `json:"http_status,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
}

type toolError struct {
	Envelope toolErrorEnvelope
}

func (e toolError) Error() string {
	envelope := map[string]any{"error": e.Envelope}
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return `{"error":{"error_code":"tool_error","detail":"failed to encode error envelope"}}`
	}
	return string(encoded)
}

// classifyToolError maps client SDK errors onto the structured envelope the
// gateway reports to MCP callers.
func classifyToolError(err error) toolErrorEnvelope {
	env := toolErrorEnvelope{ErrorCode: "tool_error", Detail: strings.TrimSpace(err.Error())}

	var authErr *client.AuthRequiredError
	if errors.As(err, &authErr) {
		env.ErrorCode = "auth_required"
		env.Detail = "operation " + authErr.Operation + " requires an API token; start the gateway with SANITY_TOKEN set"
		return env
	}
	var nfErr *client.NotFoundError
	if errors.As(err, &nfErr) {
		env.ErrorCode = "not_found"
		env.DocumentID = nfErr.ID
		return env
	}
	var qErr *client.QueryError
	if errors.As(err, &qErr) {
		env.ErrorCode = "http_" + strconv.Itoa(qErr.Status)
		env.HTTPStatus = qErr.Status
		env.Detail = strings.TrimSpace(qErr.Body)
		env.Retryable = retryableStatus(qErr.Status)
		return env
	}
	var mErr *client.MutationError
	if errors.As(err, &mErr) {
		env.ErrorCode = "http_" + strconv.Itoa(mErr.Status)
		env.HTTPStatus = mErr.Status
		env.Detail = strings.TrimSpace(mErr.Body)
		env.Retryable = retryableStatus(mErr.Status)
		return env
	}
	lower := strings.ToLower(env.Detail)
	switch {
	case strings.Contains(lower, "required"), strings.Contains(lower, "invalid"):
		env.ErrorCode = "invalid_input"
	case strings.Contains(lower, "context canceled"), strings.Contains(lower, "deadline exceeded"):
		env.ErrorCode = "cancelled"
	}
	return env
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests ||
		status == http.StatusRequestTimeout ||
		status >= 500
}
