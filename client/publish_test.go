package client_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

// draftStore answers lookup queries from a fixed id->document map and records
// the mutation batch it receives.
func draftStore(t *testing.T, docs map[string]api.Document, batch *api.MutateRequest) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/data/mutate/") {
			*batch = decodeMutateRequest(t, r)
			w.Write(mutateEnvelope(t, "txn-1", nil))
			return
		}
		id := strings.Trim(r.URL.Query().Get("$id"), `"`)
		doc, ok := docs[id]
		if !ok {
			w.Write(queryEnvelope(t, nil))
			return
		}
		w.Write(queryEnvelope(t, doc))
	})
}

func TestPublishDocumentBatchShape(t *testing.T) {
	var batch api.MutateRequest
	docs := map[string]api.Document{
		"drafts.post-1": {"_id": "drafts.post-1", "_rev": "r1", "_type": "post", "title": "T"},
	}
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{Token: "sk"})

	if _, err := cli.PublishDocument(context.Background(), "post-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(batch.Mutations) != 2 {
		t.Fatalf("batch: %+v", batch.Mutations)
	}
	payload := batch.Mutations[0].CreateOrReplace
	if payload == nil {
		t.Fatalf("first mutation should be createOrReplace: %+v", batch.Mutations[0])
	}
	if payload.ID() != "post-1" || payload["title"] != "T" {
		t.Fatalf("published payload: %v", payload)
	}
	if _, ok := payload["_rev"]; ok {
		t.Fatalf("revision should not survive publish: %v", payload)
	}
	del := batch.Mutations[1].Delete
	if del == nil || del.ID != "drafts.post-1" {
		t.Fatalf("second mutation: %+v", batch.Mutations[1])
	}
}

func TestPublishDocumentAcceptsDraftID(t *testing.T) {
	var batch api.MutateRequest
	docs := map[string]api.Document{
		"drafts.post-1": {"_id": "drafts.post-1", "title": "T"},
	}
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{Token: "sk"})

	if _, err := cli.PublishDocument(context.Background(), "drafts.post-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if batch.Mutations[0].CreateOrReplace.ID() != "post-1" {
		t.Fatalf("payload id: %v", batch.Mutations[0].CreateOrReplace)
	}
}

func TestPublishDocumentMissingDraft(t *testing.T) {
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, nil, &batch), sanitymcp.Config{Token: "sk"})

	_, err := cli.PublishDocument(context.Background(), "post-1")
	var nfErr *client.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.ID != "drafts.post-1" {
		t.Fatalf("missing id: %q", nfErr.ID)
	}
	if len(batch.Mutations) != 0 {
		t.Fatalf("no mutation should be submitted: %+v", batch.Mutations)
	}
}

func TestUnpublishDocumentBatchShape(t *testing.T) {
	var batch api.MutateRequest
	docs := map[string]api.Document{
		"post-1": {"_id": "post-1", "_rev": "r9", "title": "T"},
	}
	cli, _ := newTestClient(t, draftStore(t, docs, &batch), sanitymcp.Config{Token: "sk"})

	if _, err := cli.UnpublishDocument(context.Background(), "post-1"); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	payload := batch.Mutations[0].CreateOrReplace
	if payload.ID() != "drafts.post-1" {
		t.Fatalf("draft payload: %v", payload)
	}
	del := batch.Mutations[1].Delete
	if del == nil || del.ID != "post-1" {
		t.Fatalf("second mutation: %+v", batch.Mutations[1])
	}
}

func TestUnpublishDocumentMissingPublished(t *testing.T) {
	var batch api.MutateRequest
	cli, _ := newTestClient(t, draftStore(t, nil, &batch), sanitymcp.Config{Token: "sk"})

	_, err := cli.UnpublishDocument(context.Background(), "post-1")
	var nfErr *client.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfErr.ID != "post-1" {
		t.Fatalf("missing id: %q", nfErr.ID)
	}
}

func TestGetDraftStatus(t *testing.T) {
	cases := []struct {
		name       string
		docs       map[string]api.Document
		status     string
		hasChanges bool
	}{
		{
			name: "both",
			docs: map[string]api.Document{
				"post-1":        {"_id": "post-1"},
				"drafts.post-1": {"_id": "drafts.post-1"},
			},
			status:     client.StatusBoth,
			hasChanges: true,
		},
		{
			name:       "draft only",
			docs:       map[string]api.Document{"drafts.post-1": {"_id": "drafts.post-1"}},
			status:     client.StatusDraft,
			hasChanges: true,
		},
		{
			name:   "published only",
			docs:   map[string]api.Document{"post-1": {"_id": "post-1"}},
			status: client.StatusPublished,
		},
		{
			name:   "none",
			status: client.StatusNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var batch api.MutateRequest
			cli, _ := newTestClient(t, draftStore(t, tc.docs, &batch), sanitymcp.Config{})

			st, err := cli.GetDraftStatus(context.Background(), "drafts.post-1")
			if err != nil {
				t.Fatalf("status: %v", err)
			}
			if st.ID != "post-1" {
				t.Fatalf("normalized id: %q", st.ID)
			}
			if st.Status != tc.status {
				t.Fatalf("status: got %q, want %q", st.Status, tc.status)
			}
			if st.HasUnpublishedChanges != tc.hasChanges {
				t.Fatalf("hasUnpublishedChanges: %v", st.HasUnpublishedChanges)
			}
		})
	}
}
