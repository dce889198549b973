// Package api defines the wire types exchanged with the Content Lake HTTP
// API: documents, mutations, and the request/response envelopes for the
// query, mutate, history, and asset endpoints.
package api

import (
	"sort"
	"strings"
)

// Reserved document fields maintained by the Content Lake. Every persisted
// document carries ID, type, and revision; the timestamps are optional.
const (
	FieldID        = "_id"
	FieldType      = "_type"
	FieldRev       = "_rev"
	FieldCreatedAt = "_createdAt"
	FieldUpdatedAt = "_updatedAt"
)

// DraftsPrefix marks a document id as the unpublished variant of its base id.
// For any base id X at most two documents coexist: X and "drafts." + X.
const DraftsPrefix = "drafts."

// Reserved type-name prefixes for the store's internal document types.
// GetDocumentTypes filters these out of its result.
const (
	SystemTypePrefix = "system."
	SanityTypePrefix = "sanity."
)

// Document is a schemaless mapping from field name to JSON value. Application
// fields are unrestricted; field names are never validated by the client.
type Document map[string]any

// ID returns the document identifier, or "" when absent.
func (d Document) ID() string {
	return d.stringField(FieldID)
}

// Type returns the document type tag, or "" when absent.
func (d Document) Type() string {
	return d.stringField(FieldType)
}

// Rev returns the opaque revision marker, or "" when absent.
func (d Document) Rev() string {
	return d.stringField(FieldRev)
}

// UpdatedAt returns the reserved update timestamp, or "" when absent.
func (d Document) UpdatedAt() string {
	return d.stringField(FieldUpdatedAt)
}

func (d Document) stringField(name string) string {
	if d == nil {
		return ""
	}
	if v, ok := d[name].(string); ok {
		return v
	}
	return ""
}

// IsDraft reports whether the document id carries the drafts prefix.
func (d Document) IsDraft() bool {
	return IsDraftID(d.ID())
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ContentFields returns a copy holding only the application fields, dropping
// every reserved underscore-prefixed key.
func (d Document) ContentFields() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = v
	}
	return out
}

// FieldNames returns the sorted application field names.
func (d Document) FieldNames() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		if strings.HasPrefix(k, "_") {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsDraftID reports whether id carries the drafts prefix.
func IsDraftID(id string) bool {
	return strings.HasPrefix(id, DraftsPrefix)
}

// PublishedID strips the drafts prefix from id, if present.
func PublishedID(id string) string {
	return strings.TrimPrefix(id, DraftsPrefix)
}

// DraftID prepends the drafts prefix to id unless already present.
func DraftID(id string) string {
	if IsDraftID(id) {
		return id
	}
	return DraftsPrefix + id
}
