package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Purple-Horizons/sanity-mcp/api"
	"github.com/Purple-Horizons/sanity-mcp/client"
)

type queryDocumentsInput struct {
	Query  string         `json:"query" jsonschema:"GROQ query expression"`
	Params map[string]any `json:"params,omitempty" jsonschema:"Named parameters bound as $name inside the query"`
}

type queryDocumentsOutput struct {
	Query     string          `json:"query"`
	ElapsedMS float64         `json:"ms"`
	Result    json.RawMessage `json:"result,omitempty"`
}

func (s *server) handleQueryDocuments(ctx context.Context, _ *mcpsdk.CallToolRequest, input queryDocumentsInput) (*mcpsdk.CallToolResult, queryDocumentsOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, queryDocumentsOutput{}, fmt.Errorf("query is required")
	}
	res, err := s.content.Query(ctx, query, input.Params)
	if err != nil {
		return nil, queryDocumentsOutput{}, err
	}
	return nil, queryDocumentsOutput{
		Query:     res.Query,
		ElapsedMS: res.ElapsedMS,
		Result:    res.Result,
	}, nil
}

type getDocumentInput struct {
	ID string `json:"id" jsonschema:"Document id, published or drafts.-prefixed"`
}

type getDocumentOutput struct {
	Found    bool         `json:"found"`
	Document api.Document `json:"document,omitempty"`
}

func (s *server) handleGetDocument(ctx context.Context, _ *mcpsdk.CallToolRequest, input getDocumentInput) (*mcpsdk.CallToolResult, getDocumentOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, getDocumentOutput{}, fmt.Errorf("id is required")
	}
	doc, err := s.content.GetDocument(ctx, id)
	if err != nil {
		return nil, getDocumentOutput{}, err
	}
	return nil, getDocumentOutput{Found: doc != nil, Document: doc}, nil
}

type listByTypeInput struct {
	Type   string `json:"type" jsonschema:"Document type to list"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Page size (default 100)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Documents to skip from the start of the ordering"`
	Order  string `json:"order,omitempty" jsonschema:"Order clause, for example '_createdAt desc' (the default)"`
}

type documentListOutput struct {
	Documents []api.Document `json:"documents"`
	Count     int            `json:"count"`
}

func (s *server) handleListByType(ctx context.Context, _ *mcpsdk.CallToolRequest, input listByTypeInput) (*mcpsdk.CallToolResult, documentListOutput, error) {
	docType := strings.TrimSpace(input.Type)
	if docType == "" {
		return nil, documentListOutput{}, fmt.Errorf("type is required")
	}
	docs, err := s.content.ListDocumentsByType(ctx, docType, client.ListOptions{
		Limit:  input.Limit,
		Offset: input.Offset,
		Order:  input.Order,
	})
	if err != nil {
		return nil, documentListOutput{}, err
	}
	return nil, documentListOutput{Documents: docs, Count: len(docs)}, nil
}

type searchContentInput struct {
	Term  string   `json:"term" jsonschema:"Search term, matched case-insensitively with surrounding wildcards"`
	Limit int      `json:"limit,omitempty" jsonschema:"Maximum hits (default 20)"`
	Types []string `json:"types,omitempty" jsonschema:"Restrict the search to these document types"`
}

func (s *server) handleSearchContent(ctx context.Context, _ *mcpsdk.CallToolRequest, input searchContentInput) (*mcpsdk.CallToolResult, documentListOutput, error) {
	term := strings.TrimSpace(input.Term)
	if term == "" {
		return nil, documentListOutput{}, fmt.Errorf("term is required")
	}
	docs, err := s.content.SearchContent(ctx, term, client.SearchOptions{
		Limit: input.Limit,
		Types: input.Types,
	})
	if err != nil {
		return nil, documentListOutput{}, err
	}
	return nil, documentListOutput{Documents: docs, Count: len(docs)}, nil
}

type countDocumentsInput struct {
	Filter string `json:"filter" jsonschema:"GROQ filter expression, for example '_type == \"post\"'"`
}

type countDocumentsOutput struct {
	Count int64 `json:"count"`
}

func (s *server) handleCountDocuments(ctx context.Context, _ *mcpsdk.CallToolRequest, input countDocumentsInput) (*mcpsdk.CallToolResult, countDocumentsOutput, error) {
	filter := strings.TrimSpace(input.Filter)
	if filter == "" {
		return nil, countDocumentsOutput{}, fmt.Errorf("filter is required")
	}
	count, err := s.content.CountDocuments(ctx, filter)
	if err != nil {
		return nil, countDocumentsOutput{}, err
	}
	return nil, countDocumentsOutput{Count: count}, nil
}

type listDocumentTypesInput struct{}

type listDocumentTypesOutput struct {
	Types []string `json:"types"`
}

func (s *server) handleListDocumentTypes(ctx context.Context, _ *mcpsdk.CallToolRequest, _ listDocumentTypesInput) (*mcpsdk.CallToolResult, listDocumentTypesOutput, error) {
	types, err := s.content.GetDocumentTypes(ctx)
	if err != nil {
		return nil, listDocumentTypesOutput{}, err
	}
	return nil, listDocumentTypesOutput{Types: types}, nil
}

type inferTypeSchemaInput struct {
	Type string `json:"type" jsonschema:"Document type to inspect"`
}

type inferTypeSchemaOutput struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
	Count  int64    `json:"count"`
}

func (s *server) handleInferTypeSchema(ctx context.Context, _ *mcpsdk.CallToolRequest, input inferTypeSchemaInput) (*mcpsdk.CallToolResult, inferTypeSchemaOutput, error) {
	docType := strings.TrimSpace(input.Type)
	if docType == "" {
		return nil, inferTypeSchemaOutput{}, fmt.Errorf("type is required")
	}
	schema, err := s.content.InferTypeSchema(ctx, docType)
	if err != nil {
		return nil, inferTypeSchemaOutput{}, err
	}
	return nil, inferTypeSchemaOutput{
		Type:   schema.Type,
		Fields: schema.Fields,
		Count:  schema.Count,
	}, nil
}

type findReferencesInput struct {
	ID    string `json:"id" jsonschema:"Document id to find inbound references to"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum referencing documents to return (default 100)"`
}

type findReferencesOutput struct {
	References []client.Reference `json:"references"`
	Count      int                `json:"count"`
}

func (s *server) handleFindReferences(ctx context.Context, _ *mcpsdk.CallToolRequest, input findReferencesInput) (*mcpsdk.CallToolResult, findReferencesOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, findReferencesOutput{}, fmt.Errorf("id is required")
	}
	refs, err := s.content.FindReferences(ctx, id, input.Limit)
	if err != nil {
		return nil, findReferencesOutput{}, err
	}
	return nil, findReferencesOutput{References: refs, Count: len(refs)}, nil
}
