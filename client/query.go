package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// QueryURLLengthThreshold is the encoded query length (in characters) at
// which query execution switches from GET to POST. Queries at or above the
// threshold go in a JSON body to stay clear of URL-length limits imposed by
// intermediaries.
const QueryURLLengthThreshold = 10000

// QueryResult is the decoded result envelope of a query execution.
type QueryResult struct {
	// Query echoes the executed query string.
	Query string
	// ElapsedMS is the server-side execution time in milliseconds.
	ElapsedMS float64
	// Result is the raw result; its shape depends on the query.
	Result json.RawMessage
}

type queryBody struct {
	Query  string         `json:"query"`
	Params map[string]any `json:"params,omitempty"`
}

// Query executes an opaque query string with optional named parameters. The
// query language is not parsed or validated by the client; params are
// JSON-encoded and referenced as $name inside the query. Short queries are
// dispatched as GET with URL parameters, long ones as POST with a JSON body.
// A non-success status yields *QueryError.
func (c *Client) Query(ctx context.Context, query string, params map[string]any) (*QueryResult, error) {
	path := "/data/query/" + c.cfg.Dataset
	var resp api.QueryResponse

	if encodedQueryLength(query) < QueryURLLengthThreshold {
		values := url.Values{}
		values.Set("query", query)
		for name, value := range params {
			data, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encode param %q: %w", name, err)
			}
			values.Set("$"+name, string(data))
		}
		if err := c.getJSON(ctx, c.readBaseURL(), path, values, &resp, asQueryError); err != nil {
			return nil, err
		}
	} else {
		body := queryBody{Query: query, Params: params}
		if err := c.postJSON(ctx, c.readBaseURL(), path, body, &resp, asQueryError); err != nil {
			return nil, err
		}
	}

	result := &QueryResult{Query: resp.Query, ElapsedMS: resp.ElapsedMS, Result: resp.Result}
	if result.Query == "" {
		result.Query = query
	}
	return result, nil
}

// encodedQueryLength measures the query as it would appear URL-encoded, which
// is what intermediary URL limits see.
func encodedQueryLength(query string) int {
	return len(url.QueryEscape(query))
}

// resultIsNull reports whether a raw query result is absent or JSON null.
func resultIsNull(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe == nil
}
