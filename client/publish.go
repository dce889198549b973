package client

import (
	"context"
	"sync"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// Draft lifecycle states reported by GetDraftStatus.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusBoth      = "both"
	StatusNone      = "none"
)

// PublishDocument moves content from draft to published state in one atomic
// batch: createOrReplace at the bare id (reserved id and revision stripped
// from the draft payload) plus delete of the draft. Fails with
// *NotFoundError when the draft does not exist. No intermediate state is
// observable.
func (c *Client) PublishDocument(ctx context.Context, id string) (*api.MutateResponse, error) {
	if err := c.requireToken("publish document"); err != nil {
		return nil, err
	}
	draftID := api.DraftID(id)
	publishedID := api.PublishedID(id)

	draft, err := c.GetDocument(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, &NotFoundError{ID: draftID}
	}

	payload := stripIdentity(draft)
	payload[api.FieldID] = publishedID
	return c.Mutate(ctx, []api.Mutation{
		{CreateOrReplace: payload},
		{Delete: &api.Delete{ID: draftID}},
	}, MutateOptions{})
}

// UnpublishDocument is the symmetric transition: the published payload moves
// under the drafts prefix and the published copy is deleted, atomically.
// Fails with *NotFoundError when the published document does not exist.
func (c *Client) UnpublishDocument(ctx context.Context, id string) (*api.MutateResponse, error) {
	if err := c.requireToken("unpublish document"); err != nil {
		return nil, err
	}
	publishedID := api.PublishedID(id)
	draftID := api.DraftID(publishedID)

	published, err := c.GetDocument(ctx, publishedID)
	if err != nil {
		return nil, err
	}
	if published == nil {
		return nil, &NotFoundError{ID: publishedID}
	}

	payload := stripIdentity(published)
	payload[api.FieldID] = draftID
	return c.Mutate(ctx, []api.Mutation{
		{CreateOrReplace: payload},
		{Delete: &api.Delete{ID: publishedID}},
	}, MutateOptions{})
}

// stripIdentity drops the reserved id and revision fields so the payload can
// be re-keyed on the other side of the draft boundary.
func stripIdentity(doc api.Document) api.Document {
	payload := doc.Clone()
	delete(payload, api.FieldID)
	delete(payload, api.FieldRev)
	return payload
}

// DraftStatus classifies the draft/published existence of a logical content
// item.
type DraftStatus struct {
	// ID is the normalized published (base) id.
	ID string `json:"id"`
	// Status is one of published, draft, both, or none.
	Status string `json:"status"`
	// HasUnpublishedChanges is true exactly when a draft exists, whether or
	// not a published copy also exists.
	HasUnpublishedChanges bool `json:"hasUnpublishedChanges"`
}

// GetDraftStatus normalizes id to its published form and fetches both
// variants concurrently to classify the item's state.
func (c *Client) GetDraftStatus(ctx context.Context, id string) (*DraftStatus, error) {
	publishedID := api.PublishedID(id)
	draftID := api.DraftID(publishedID)

	var (
		wg                     sync.WaitGroup
		published, draft       api.Document
		publishedErr, draftErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		published, publishedErr = c.GetDocument(ctx, publishedID)
	}()
	go func() {
		defer wg.Done()
		draft, draftErr = c.GetDocument(ctx, draftID)
	}()
	wg.Wait()
	if publishedErr != nil {
		return nil, publishedErr
	}
	if draftErr != nil {
		return nil, draftErr
	}

	status := &DraftStatus{ID: publishedID, HasUnpublishedChanges: draft != nil}
	switch {
	case published != nil && draft != nil:
		status.Status = StatusBoth
	case draft != nil:
		status.Status = StatusDraft
	case published != nil:
		status.Status = StatusPublished
	default:
		status.Status = StatusNone
	}
	return status, nil
}
