package client

import (
	"context"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// DryRunTransactionID tags synthesized results of a dry-run bulk mutation.
const DryRunTransactionID = "dry-run"

// MutateOptions tunes the mutate primitive.
type MutateOptions struct {
	// ReturnDocuments asks the store to echo resulting documents.
	ReturnDocuments bool
}

// Mutate submits an ordered mutation batch to the write endpoint. The store
// applies the batch all-or-nothing; the client's only contribution to
// atomicity is keeping the batch in a single call. Requires a token; always
// uses the direct host. A non-success status yields *MutationError.
func (c *Client) Mutate(ctx context.Context, mutations []api.Mutation, opts MutateOptions) (*api.MutateResponse, error) {
	if err := c.requireToken("mutate"); err != nil {
		return nil, err
	}
	body := api.MutateRequest{Mutations: mutations, ReturnDocuments: opts.ReturnDocuments}
	var resp api.MutateResponse
	if err := c.postJSON(ctx, c.writeBaseURL(), "/data/mutate/"+c.cfg.Dataset, body, &resp, asMutationError); err != nil {
		return nil, err
	}
	c.logTraceCtx(ctx, "client.mutate.applied", "transaction_id", resp.TransactionID, "mutations", len(mutations))
	return &resp, nil
}

// CreateDocument creates a document. When the payload carries an id the
// mutation is submitted as createOrReplace (an idempotent upsert); otherwise
// as a bare create, letting the store assign the id.
func (c *Client) CreateDocument(ctx context.Context, doc api.Document) (*api.MutateResponse, error) {
	if err := c.requireToken("create document"); err != nil {
		return nil, err
	}
	var mut api.Mutation
	if doc.ID() != "" {
		mut = api.Mutation{CreateOrReplace: doc}
	} else {
		mut = api.Mutation{Create: doc}
	}
	return c.Mutate(ctx, []api.Mutation{mut}, MutateOptions{ReturnDocuments: true})
}

// UpdateDocument replaces the document at id with the supplied payload.
// This is a destructive overwrite: fields absent from doc are gone after
// the call.
func (c *Client) UpdateDocument(ctx context.Context, id string, doc api.Document) (*api.MutateResponse, error) {
	if err := c.requireToken("update document"); err != nil {
		return nil, err
	}
	payload := doc.Clone()
	if payload == nil {
		payload = api.Document{}
	}
	payload[api.FieldID] = id
	return c.Mutate(ctx, []api.Mutation{{CreateOrReplace: payload}}, MutateOptions{ReturnDocuments: true})
}

// PatchDocument applies a partial-update instruction set to the document
// named by patch.ID. Only the instruction groups actually populated are
// forwarded on the wire.
func (c *Client) PatchDocument(ctx context.Context, patch api.Patch) (*api.MutateResponse, error) {
	if err := c.requireToken("patch document"); err != nil {
		return nil, err
	}
	return c.Mutate(ctx, []api.Mutation{{Patch: &patch}}, MutateOptions{ReturnDocuments: true})
}

// DeleteDocument removes a single document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) (*api.MutateResponse, error) {
	if err := c.requireToken("delete document"); err != nil {
		return nil, err
	}
	return c.Mutate(ctx, []api.Mutation{{Delete: &api.Delete{ID: id}}}, MutateOptions{})
}

// BulkOptions tunes BulkMutate.
type BulkOptions struct {
	// DryRun validates the batch shape without any network call. The result
	// carries DryRunTransactionID and one synthesized entry per mutation.
	DryRun bool
	// ReturnDocuments asks the store to echo resulting documents.
	ReturnDocuments bool
}

// BulkMutate submits a caller-ordered list of arbitrary mutations as one
// atomic batch.
func (c *Client) BulkMutate(ctx context.Context, mutations []api.Mutation, opts BulkOptions) (*api.MutateResponse, error) {
	if err := c.requireToken("bulk mutate"); err != nil {
		return nil, err
	}
	if opts.DryRun {
		results := make([]api.MutationResult, len(mutations))
		for i, mut := range mutations {
			results[i] = api.MutationResult{ID: mut.DocumentID(), Operation: mut.Kind()}
		}
		return &api.MutateResponse{TransactionID: DryRunTransactionID, Results: results}, nil
	}
	return c.Mutate(ctx, mutations, MutateOptions{ReturnDocuments: opts.ReturnDocuments})
}
