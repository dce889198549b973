package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

const (
	// DefaultListLimit caps ListDocumentsByType when no limit is supplied.
	DefaultListLimit = 100
	// DefaultListOrder sorts listings newest-first.
	DefaultListOrder = "_createdAt desc"
	// DefaultSearchLimit caps SearchContent when no limit is supplied.
	DefaultSearchLimit = 20
	// DefaultReferenceLimit caps FindReferences when no limit is supplied.
	DefaultReferenceLimit = 100
)

// GetDocument fetches a single document by id. An absent document returns
// nil with a nil error; "not found" is not an error condition for plain
// lookups.
func (c *Client) GetDocument(ctx context.Context, id string) (api.Document, error) {
	res, err := c.Query(ctx, "*[_id == $id][0]", map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if resultIsNull(res.Result) {
		return nil, nil
	}
	var doc api.Document
	if err := json.Unmarshal(res.Result, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListOptions tunes ListDocumentsByType.
type ListOptions struct {
	// Limit caps the page size. Zero means DefaultListLimit.
	Limit int
	// Offset skips that many documents from the start of the ordering.
	Offset int
	// Order is rendered verbatim into the query's order() clause. It is
	// caller-controlled and not parameterized; never populate it from
	// untrusted input. Empty means DefaultListOrder.
	Order string
}

// ListDocumentsByType returns one page of documents of the given type.
func (c *Client) ListDocumentsByType(ctx context.Context, docType string, opts ListOptions) ([]api.Document, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	order := strings.TrimSpace(opts.Order)
	if order == "" {
		order = DefaultListOrder
	}

	query := fmt.Sprintf("*[_type == $type] | order(%s) [%d...%d]", order, offset, offset+limit)
	res, err := c.Query(ctx, query, map[string]any{"type": docType})
	if err != nil {
		return nil, err
	}
	return decodeDocuments(res.Result)
}

// SearchOptions tunes SearchContent.
type SearchOptions struct {
	// Limit caps the result size. Zero means DefaultSearchLimit.
	Limit int
	// Types optionally restricts the search to these document types. The
	// list is rendered as a JSON array literal inside the query and is a
	// caller-controlled trust boundary like ListOptions.Order.
	Types []string
}

// SearchContent runs a weighted full-text search across common text fields.
// The term is wrapped in wildcard markers and passed as a parameter; asset
// documents are always excluded. Each returned document carries a _score
// field.
func (c *Client) SearchContent(ctx context.Context, term string, opts SearchOptions) ([]api.Document, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	filter := `!(_type in ["sanity.imageAsset", "sanity.fileAsset"])`
	if len(opts.Types) > 0 {
		literal, err := json.Marshal(opts.Types)
		if err != nil {
			return nil, err
		}
		filter += " && _type in " + string(literal)
	}

	query := fmt.Sprintf(`*[%s] | score(
  boost(title match $term, 3),
  boost(name match $term, 3),
  boost(description match $term, 2),
  boost(body match $term, 1),
  boost(pt::text(body) match $term, 1)
) | order(_score desc) [0...%d] {..., _score}`, filter, limit)

	res, err := c.Query(ctx, query, map[string]any{"term": "*" + term + "*"})
	if err != nil {
		return nil, err
	}
	return decodeDocuments(res.Result)
}

// CountDocuments evaluates count(*[filter]). The filter expression is
// rendered verbatim into the query; it is caller-controlled and must not
// come from untrusted input.
func (c *Client) CountDocuments(ctx context.Context, filter string) (int64, error) {
	res, err := c.Query(ctx, fmt.Sprintf("count(*[%s])", filter), nil)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := json.Unmarshal(res.Result, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetDocumentTypes lists the distinct document types in the dataset,
// filtering out the store's reserved internal type prefixes.
func (c *Client) GetDocumentTypes(ctx context.Context) ([]string, error) {
	res, err := c.Query(ctx, "array::unique(*[]._type)", nil)
	if err != nil {
		return nil, err
	}
	var all []string
	if err := json.Unmarshal(res.Result, &all); err != nil {
		return nil, err
	}
	types := make([]string, 0, len(all))
	for _, name := range all {
		if strings.HasPrefix(name, api.SystemTypePrefix) || strings.HasPrefix(name, api.SanityTypePrefix) {
			continue
		}
		types = append(types, name)
	}
	sort.Strings(types)
	return types, nil
}

// TypeSchema is the inferred shape of one document type.
type TypeSchema struct {
	// Type is the inspected type name.
	Type string `json:"type"`
	// Fields are the application field names observed on a sample document,
	// sorted. Empty when the dataset holds no document of the type.
	Fields []string `json:"fields"`
	// Count is the number of documents of the type.
	Count int64 `json:"count"`
}

// InferTypeSchema samples one document of the type and counts the total,
// fetching both concurrently. Reserved underscore-prefixed fields are
// excluded from the field list.
func (c *Client) InferTypeSchema(ctx context.Context, docType string) (*TypeSchema, error) {
	var (
		wg        sync.WaitGroup
		sample    api.Document
		sampleErr error
		count     int64
		countErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := c.Query(ctx, "*[_type == $type][0]", map[string]any{"type": docType})
		if err != nil {
			sampleErr = err
			return
		}
		if resultIsNull(res.Result) {
			return
		}
		sampleErr = json.Unmarshal(res.Result, &sample)
	}()
	go func() {
		defer wg.Done()
		res, err := c.Query(ctx, "count(*[_type == $type])", map[string]any{"type": docType})
		if err != nil {
			countErr = err
			return
		}
		countErr = json.Unmarshal(res.Result, &count)
	}()
	wg.Wait()
	if sampleErr != nil {
		return nil, sampleErr
	}
	if countErr != nil {
		return nil, countErr
	}

	schema := &TypeSchema{Type: docType, Fields: []string{}, Count: count}
	if sample != nil {
		schema.Fields = sample.FieldNames()
	}
	return schema, nil
}

// Reference identifies a document that points at another.
type Reference struct {
	// ID is the referencing document's id.
	ID string `json:"_id"`
	// Type is the referencing document's type.
	Type string `json:"_type"`
}

// FindReferences lists documents referencing the given id, capped at limit
// (DefaultReferenceLimit when zero). Only id and type are projected; the
// result is intended for impact analysis before destructive operations.
func (c *Client) FindReferences(ctx context.Context, id string, limit int) ([]Reference, error) {
	if limit <= 0 {
		limit = DefaultReferenceLimit
	}
	query := fmt.Sprintf("*[references($id)] [0...%d] {_id, _type}", limit)
	res, err := c.Query(ctx, query, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	var refs []Reference
	if err := json.Unmarshal(res.Result, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func decodeDocuments(raw json.RawMessage) ([]api.Document, error) {
	if resultIsNull(raw) {
		return nil, nil
	}
	var docs []api.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
