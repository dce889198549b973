package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

func historyEnvelope(t *testing.T, docs []api.Document) []byte {
	t.Helper()
	data, err := json.Marshal(api.HistoryResponse{Documents: docs})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return data
}

func TestGetHistoryDecodesRevisions(t *testing.T) {
	var gotPath, gotLimit string
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Write(historyEnvelope(t, []api.Document{
			{"_id": "post-1", "_rev": "r3", "_updatedAt": "2024-03-03T00:00:00Z"},
			{"_id": "post-1", "_rev": "r2", "_updatedAt": "2024-02-02T00:00:00Z"},
		}))
	}), sanitymcp.Config{Token: "sk"})

	res, err := cli.GetHistory(context.Background(), "post-1", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if gotPath != "/data/history/production/documents/post-1" {
		t.Fatalf("path: %s", gotPath)
	}
	if gotLimit != "10" {
		t.Fatalf("limit: %s", gotLimit)
	}
	if res.Synthesized {
		t.Fatalf("real history flagged as synthesized")
	}
	if len(res.Entries) != 2 || res.Entries[0].Revision != "r3" {
		t.Fatalf("entries: %+v", res.Entries)
	}
}

func TestGetHistoryDefaultLimit(t *testing.T) {
	var gotLimit string
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write(historyEnvelope(t, nil))
	}), sanitymcp.Config{Token: "sk"})

	if _, err := cli.GetHistory(context.Background(), "post-1", 0); err != nil {
		t.Fatalf("history: %v", err)
	}
	if gotLimit != strconv.Itoa(client.DefaultHistoryLimit) {
		t.Fatalf("limit: %s", gotLimit)
	}
}

func TestGetHistoryDegradesToCurrentState(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/data/history/") {
			http.Error(w, "no history for you", http.StatusForbidden)
			return
		}
		w.Write(queryEnvelope(t, api.Document{
			"_id": "post-1", "_rev": "r7", "_updatedAt": "2024-04-04T00:00:00Z",
		}))
	}), sanitymcp.Config{Token: "sk"})

	res, err := cli.GetHistory(context.Background(), "post-1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !res.Synthesized {
		t.Fatalf("fallback should be flagged as synthesized")
	}
	if len(res.Entries) != 1 {
		t.Fatalf("entries: %+v", res.Entries)
	}
	entry := res.Entries[0]
	if entry.ID != "post-1" || entry.Revision != "r7" || entry.Timestamp != "2024-04-04T00:00:00Z" {
		t.Fatalf("entry: %+v", entry)
	}
}

func TestGetHistoryDegradesToEmptyForMissingDocument(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/data/history/") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write(queryEnvelope(t, nil))
	}), sanitymcp.Config{Token: "sk"})

	res, err := cli.GetHistory(context.Background(), "ghost", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !res.Synthesized {
		t.Fatalf("fallback should be flagged as synthesized")
	}
	if len(res.Entries) != 0 || res.Entries == nil {
		t.Fatalf("entries should be empty and non-nil: %#v", res.Entries)
	}
}

func TestGetHistorySynthesizesPlaceholderRevision(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/data/history/") {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		w.Write(queryEnvelope(t, api.Document{"_id": "post-1"}))
	}), sanitymcp.Config{Token: "sk"})

	res, err := cli.GetHistory(context.Background(), "post-1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	entry := res.Entries[0]
	if entry.Revision != "unknown" {
		t.Fatalf("revision: %q", entry.Revision)
	}
	if entry.Timestamp == "" {
		t.Fatalf("timestamp should be filled in")
	}
}

func TestGetHistoryEscapesDocumentID(t *testing.T) {
	var gotPath string
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write(historyEnvelope(t, nil))
	}), sanitymcp.Config{Token: "sk"})

	if _, err := cli.GetHistory(context.Background(), "drafts.post/1", 0); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/documents/drafts.post%2F1") {
		t.Fatalf("path: %s", gotPath)
	}
}
