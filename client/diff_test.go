package client_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

func TestCompareDocumentsCategorizesFields(t *testing.T) {
	docs := map[string]api.Document{
		"doc-a": {"_id": "doc-a", "_rev": "r1", "a": 1, "b": 2},
		"doc-b": {"_id": "doc-b", "_rev": "r2", "b": 2, "c": 3},
	}
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{})

	diff, err := cli.CompareDocuments(context.Background(), "doc-a", "doc-b")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !reflect.DeepEqual(diff.Added, []string{"c"}) {
		t.Fatalf("added: %v", diff.Added)
	}
	if !reflect.DeepEqual(diff.Removed, []string{"a"}) {
		t.Fatalf("removed: %v", diff.Removed)
	}
	if !reflect.DeepEqual(diff.Changed, []string{}) {
		t.Fatalf("changed: %v", diff.Changed)
	}
	if !reflect.DeepEqual(diff.Unchanged, []string{"b"}) {
		t.Fatalf("unchanged: %v", diff.Unchanged)
	}
}

func TestCompareDocumentsDeepValues(t *testing.T) {
	docs := map[string]api.Document{
		"doc-a": {
			"_id":  "doc-a",
			"meta": map[string]any{"x": 1, "y": 2},
			"tags": []any{"go", "cms"},
		},
		"doc-b": {
			"_id":  "doc-b",
			"meta": map[string]any{"y": 2, "x": 1},
			"tags": []any{"cms", "go"},
		},
	}
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{})

	diff, err := cli.CompareDocuments(context.Background(), "doc-a", "doc-b")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	// Map key order is irrelevant, array order is not.
	if !reflect.DeepEqual(diff.Unchanged, []string{"meta"}) {
		t.Fatalf("unchanged: %v", diff.Unchanged)
	}
	if !reflect.DeepEqual(diff.Changed, []string{"tags"}) {
		t.Fatalf("changed: %v", diff.Changed)
	}
}

func TestCompareDocumentsMissingSide(t *testing.T) {
	docs := map[string]api.Document{
		"doc-a": {"_id": "doc-a", "a": 1},
	}
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{})

	_, err := cli.CompareDocuments(context.Background(), "doc-a", "ghost")
	var nfErr *client.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.ID != "ghost" {
		t.Fatalf("missing id: %q", nfErr.ID)
	}
}

func TestCompareDocumentsBothMissingReportsFirst(t *testing.T) {
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, nil, &batch), sanitymcp.Config{})

	_, err := cli.CompareDocuments(context.Background(), "ghost-a", "ghost-b")
	var nfErr *client.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.ID != "ghost-a" {
		t.Fatalf("missing id: %q", nfErr.ID)
	}
}
