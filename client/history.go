package client

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// DefaultHistoryLimit caps GetHistory when no limit is supplied.
const DefaultHistoryLimit = 25

// HistoryResult carries the revision history for a document. Synthesized
// distinguishes a real server-side history from the best-effort single-entry
// fallback built when the history endpoint is unavailable.
type HistoryResult struct {
	// Entries are the revisions, newest first.
	Entries []api.HistoryEntry `json:"entries"`
	// Synthesized is true when Entries were fabricated from the document's
	// current state because the history endpoint failed.
	Synthesized bool `json:"synthesized"`
}

// GetHistory fetches the revision history for a document, capped at limit
// (DefaultHistoryLimit when zero). Requires a token; the history endpoint
// lives on the direct host only.
//
// Unavailability of the history endpoint is not surfaced as an error: when
// the endpoint answers with a non-success status the result degrades to a
// single entry synthesized from the document's current state (or to an
// empty list when the document does not exist), flagged via Synthesized.
// Transport failures and context cancellation still propagate.
func (c *Client) GetHistory(ctx context.Context, id string, limit int) (*HistoryResult, error) {
	if err := c.requireToken("document history"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	path := "/data/history/" + c.cfg.Dataset + "/documents/" + url.PathEscape(id)
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))

	var resp api.HistoryResponse
	err := c.getJSON(ctx, c.writeBaseURL(), path, values, &resp, asQueryError)
	if err == nil {
		entries := make([]api.HistoryEntry, 0, len(resp.Documents))
		for _, doc := range resp.Documents {
			entries = append(entries, api.HistoryEntry{
				ID:        doc.ID(),
				Revision:  doc.Rev(),
				Timestamp: doc.UpdatedAt(),
			})
		}
		return &HistoryResult{Entries: entries}, nil
	}

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		return nil, err
	}
	c.logWarnCtx(ctx, "client.history.degraded", "id", id, "status", qerr.Status)
	return c.synthesizeHistory(ctx, id)
}

func (c *Client) synthesizeHistory(ctx context.Context, id string) (*HistoryResult, error) {
	doc, err := c.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return &HistoryResult{Entries: []api.HistoryEntry{}, Synthesized: true}, nil
	}
	revision := doc.Rev()
	if revision == "" {
		revision = "unknown"
	}
	timestamp := doc.UpdatedAt()
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return &HistoryResult{
		Entries:     []api.HistoryEntry{{ID: id, Revision: revision, Timestamp: timestamp}},
		Synthesized: true,
	}, nil
}
