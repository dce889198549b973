package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

type mutateToolOutput struct {
	TransactionID string               `json:"transaction_id"`
	Results       []api.MutationResult `json:"results,omitempty"`
	Documents     []api.Document       `json:"documents,omitempty"`
}

func mutateOutput(resp *api.MutateResponse) mutateToolOutput {
	return mutateToolOutput{
		TransactionID: resp.TransactionID,
		Results:       resp.Results,
		Documents:     resp.Documents,
	}
}

type createDocumentInput struct {
	Document api.Document `json:"document" jsonschema:"Document payload; must carry _type, _id is optional"`
}

func (s *server) handleCreateDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input createDocumentInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	if len(input.Document) == 0 {
		return nil, mutateToolOutput{}, fmt.Errorf("document is required")
	}
	if input.Document.Type() == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("document._type is required")
	}
	resp, err := s.content.CreateDocument(ctx, input.Document)
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

type updateDocumentInput struct {
	ID       string       `json:"id" jsonschema:"Id of the document to replace"`
	Document api.Document `json:"document" jsonschema:"Complete replacement payload"`
}

func (s *server) handleUpdateDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input updateDocumentInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("id is required")
	}
	if len(input.Document) == 0 {
		return nil, mutateToolOutput{}, fmt.Errorf("document is required")
	}
	resp, err := s.content.UpdateDocument(ctx, id, input.Document)
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

type patchDocumentInput struct {
	ID    string             `json:"id" jsonschema:"Id of the document to patch"`
	Set   map[string]any     `json:"set,omitempty" jsonschema:"Field paths to set"`
	Unset []string           `json:"unset,omitempty" jsonschema:"Field paths to remove"`
	Inc   map[string]float64 `json:"inc,omitempty" jsonschema:"Numeric field paths to increment"`
	Dec   map[string]float64 `json:"dec,omitempty" jsonschema:"Numeric field paths to decrement"`
}

func (s *server) handlePatchDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input patchDocumentInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("id is required")
	}
	if len(input.Set) == 0 && len(input.Unset) == 0 && len(input.Inc) == 0 && len(input.Dec) == 0 {
		return nil, mutateToolOutput{}, fmt.Errorf("at least one of set, unset, inc, dec is required")
	}
	resp, err := s.content.PatchDocument(ctx, api.Patch{
		ID:    id,
		Set:   input.Set,
		Unset: input.Unset,
		Inc:   input.Inc,
		Dec:   input.Dec,
	})
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

type deleteDocumentInput struct {
	ID string `json:"id" jsonschema:"Id of the document to delete"`
}

func (s *server) handleDeleteDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input deleteDocumentInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("id is required")
	}
	resp, err := s.content.DeleteDocument(ctx, id)
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

type bulkMutateInput struct {
	Mutations       []api.Mutation `json:"mutations" jsonschema:"Mutations applied as one atomic transaction, each carrying exactly one of create, createOrReplace, createIfNotExists, patch, delete"`
	ReturnDocuments bool           `json:"return_documents,omitempty" jsonschema:"Echo resulting documents in the response"`
	DryRun          bool           `json:"dry_run,omitempty" jsonschema:"Validate locally without submitting; the synthesized transaction id is 'dry-run'"`
}

func (s *server) handleBulkMutate(ctx context.Context, _ *mcpsdk.CallToolRequest, input bulkMutateInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	if len(input.Mutations) == 0 {
		return nil, mutateToolOutput{}, fmt.Errorf("mutations is required")
	}
	for i, mut := range input.Mutations {
		if mut.Kind() == "" {
			return nil, mutateToolOutput{}, fmt.Errorf("mutation %d carries no operation", i)
		}
	}
	resp, err := s.content.BulkMutate(ctx, input.Mutations, client.BulkOptions{
		ReturnDocuments: input.ReturnDocuments,
		DryRun:          input.DryRun,
	})
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}
