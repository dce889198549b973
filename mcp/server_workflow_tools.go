package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

type documentIDInput struct {
	ID string `json:"id" jsonschema:"Document id; the drafts. prefix is normalized away"`
}

func (s *server) handlePublishDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input documentIDInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("id is required")
	}
	resp, err := s.content.PublishDocument(ctx, id)
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

func (s *server) handleUnpublishDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input documentIDInput) (*mcpsdk.CallToolResult, mutateToolOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mutateToolOutput{}, fmt.Errorf("id is required")
	}
	resp, err := s.content.UnpublishDocument(ctx, id)
	if err != nil {
		return nil, mutateToolOutput{}, err
	}
	return nil, mutateOutput(resp), nil
}

type draftStatusOutput struct {
	ID                    string `json:"id"`
	Status                string `json:"status" jsonschema:"One of published, draft, both, or none"`
	HasUnpublishedChanges bool   `json:"has_unpublished_changes"`
}

func (s *server) handleGetDraftStatus(ctx context.Context, _ *mcpsdk.CallToolRequest, input documentIDInput) (*mcpsdk.CallToolResult, draftStatusOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, draftStatusOutput{}, fmt.Errorf("id is required")
	}
	status, err := s.content.GetDraftStatus(ctx, id)
	if err != nil {
		return nil, draftStatusOutput{}, err
	}
	return nil, draftStatusOutput{
		ID:                    status.ID,
		Status:                status.Status,
		HasUnpublishedChanges: status.HasUnpublishedChanges,
	}, nil
}

type compareDocumentsInput struct {
	IDA string `json:"id_a" jsonschema:"First document id (the baseline)"`
	IDB string `json:"id_b" jsonschema:"Second document id (the candidate)"`
}

type compareDocumentsOutput struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Changed   []string `json:"changed"`
	Unchanged []string `json:"unchanged"`
}

func (s *server) handleCompareDocuments(ctx context.Context, _ *mcpsdk.CallToolRequest, input compareDocumentsInput) (*mcpsdk.CallToolResult, compareDocumentsOutput, error) {
	idA := strings.TrimSpace(input.IDA)
	idB := strings.TrimSpace(input.IDB)
	if idA == "" || idB == "" {
		return nil, compareDocumentsOutput{}, fmt.Errorf("id_a and id_b are required")
	}
	diff, err := s.content.CompareDocuments(ctx, idA, idB)
	if err != nil {
		return nil, compareDocumentsOutput{}, err
	}
	return nil, compareDocumentsOutput{
		Added:     diff.Added,
		Removed:   diff.Removed,
		Changed:   diff.Changed,
		Unchanged: diff.Unchanged,
	}, nil
}

type getHistoryInput struct {
	ID    string `json:"id" jsonschema:"Document id"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum revisions to return (default 25)"`
}

type getHistoryOutput struct {
	Entries     []api.HistoryEntry `json:"entries"`
	Synthesized bool               `json:"synthesized" jsonschema:"True when the entries were synthesized from current state because the history endpoint was unavailable"`
}

func (s *server) handleGetHistory(ctx context.Context, _ *mcpsdk.CallToolRequest, input getHistoryInput) (*mcpsdk.CallToolResult, getHistoryOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, getHistoryOutput{}, fmt.Errorf("id is required")
	}
	res, err := s.content.GetHistory(ctx, id, input.Limit)
	if err != nil {
		return nil, getHistoryOutput{}, err
	}
	return nil, getHistoryOutput{Entries: res.Entries, Synthesized: res.Synthesized}, nil
}
