package api

import "encoding/json"

// Mutation is a tagged variant over the five mutation kinds. Exactly one
// field should be set; the zero value serializes to "{}" and is rejected by
// the server.
type Mutation struct {
	// Create inserts a new document; the store assigns an id when the
	// payload omits one. Fails when the id already exists.
	Create Document `json:"create,omitempty"`
	// CreateOrReplace is an idempotent upsert keyed on the payload's _id.
	CreateOrReplace Document `json:"createOrReplace,omitempty"`
	// CreateIfNotExists inserts only when the payload's _id is absent.
	CreateIfNotExists Document `json:"createIfNotExists,omitempty"`
	// Patch applies a partial-update instruction set to an existing document.
	Patch *Patch `json:"patch,omitempty"`
	// Delete removes a single document by id.
	Delete *Delete `json:"delete,omitempty"`
}

// Kind names the mutation variant that is set, or "" for the zero value.
func (m Mutation) Kind() string {
	switch {
	case m.Create != nil:
		return "create"
	case m.CreateOrReplace != nil:
		return "createOrReplace"
	case m.CreateIfNotExists != nil:
		return "createIfNotExists"
	case m.Patch != nil:
		return "patch"
	case m.Delete != nil:
		return "delete"
	}
	return ""
}

// DocumentID returns the id the mutation targets, when determinable.
func (m Mutation) DocumentID() string {
	switch {
	case m.Create != nil:
		return m.Create.ID()
	case m.CreateOrReplace != nil:
		return m.CreateOrReplace.ID()
	case m.CreateIfNotExists != nil:
		return m.CreateIfNotExists.ID()
	case m.Patch != nil:
		return m.Patch.ID
	case m.Delete != nil:
		return m.Delete.ID
	}
	return ""
}

// Patch carries the partial-update instructions for one document. Instruction
// groups left nil are omitted from the wire payload entirely, never sent as
// empty or null.
type Patch struct {
	// ID is the target document id.
	ID string `json:"id"`
	// Set assigns field values.
	Set map[string]any `json:"set,omitempty"`
	// Unset removes fields by name.
	Unset []string `json:"unset,omitempty"`
	// Inc adds to numeric fields.
	Inc map[string]float64 `json:"inc,omitempty"`
	// Dec subtracts from numeric fields.
	Dec map[string]float64 `json:"dec,omitempty"`
	// Insert splices items into an array relative to a location expression.
	Insert *Insert `json:"insert,omitempty"`
}

// Insert describes an ordered array insertion. Exactly one of Before, After,
// or Replace must name the anchor location.
type Insert struct {
	// Before inserts Items before the matched location.
	Before string `json:"before,omitempty"`
	// After inserts Items after the matched location.
	After string `json:"after,omitempty"`
	// Replace substitutes Items for the matched location.
	Replace string `json:"replace,omitempty"`
	// Items are the values spliced in, in order.
	Items []any `json:"items"`
}

// Delete removes the document with the given id.
type Delete struct {
	// ID is the target document id.
	ID string `json:"id"`
}

// MutateRequest is the body POSTed to data/mutate/<dataset>. Mutations apply
// in order and all-or-nothing within one request.
type MutateRequest struct {
	// Mutations is the ordered batch.
	Mutations []Mutation `json:"mutations"`
	// ReturnDocuments asks the store to echo resulting documents.
	ReturnDocuments bool `json:"returnDocuments,omitempty"`
}

// MutateResponse reports the outcome of a mutation batch.
type MutateResponse struct {
	// TransactionID identifies the applied transaction.
	TransactionID string `json:"transactionId"`
	// Results holds one entry per applied mutation.
	Results []MutationResult `json:"results"`
	// Documents echoes resulting documents when ReturnDocuments was set.
	Documents []Document `json:"documents,omitempty"`
}

// MutationResult describes the effect of a single mutation within a batch.
type MutationResult struct {
	// ID is the affected document id.
	ID string `json:"id,omitempty"`
	// Operation names the applied mutation kind.
	Operation string `json:"operation,omitempty"`
}

// QueryResponse is the envelope returned by data/query/<dataset>.
type QueryResponse struct {
	// Query echoes the executed query string.
	Query string `json:"query"`
	// Result is the raw query result; its shape depends on the query.
	Result json.RawMessage `json:"result"`
	// ElapsedMS is the server-side execution time in milliseconds.
	ElapsedMS float64 `json:"ms"`
}

// HistoryResponse is the envelope returned by the revision history endpoint:
// document snapshots at successive revisions, newest first.
type HistoryResponse struct {
	// Documents are the revision snapshots.
	Documents []Document `json:"documents"`
}

// HistoryEntry summarizes one revision of a document.
type HistoryEntry struct {
	// ID is the document id at that revision.
	ID string `json:"id"`
	// Revision is the opaque revision marker.
	Revision string `json:"revision"`
	// Timestamp is the revision's update time (RFC 3339), when known.
	Timestamp string `json:"timestamp,omitempty"`
}

// AssetDocument summarizes the asset document created by an upload.
type AssetDocument struct {
	// ID is the created asset document id.
	ID string `json:"_id"`
	// Type is the asset document type (for images, "sanity.imageAsset").
	Type string `json:"_type"`
	// URL is the public URL serving the uploaded binary.
	URL string `json:"url,omitempty"`
	// Path is the storage path of the uploaded binary.
	Path string `json:"path,omitempty"`
	// Size is the uploaded payload size in bytes.
	Size int64 `json:"size,omitempty"`
	// MimeType is the stored media type.
	MimeType string `json:"mimeType,omitempty"`
	// OriginalFilename is the filename supplied at upload time.
	OriginalFilename string `json:"originalFilename,omitempty"`
}

// AssetResponse is the envelope returned by assets/images/<dataset>.
type AssetResponse struct {
	// Document is the created asset document.
	Document AssetDocument `json:"document"`
}
