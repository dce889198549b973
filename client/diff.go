package client

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/Purple-Horizons/sanity-mcp/api"
)

// DocumentDiff is the field-set difference between two documents, computed
// over application fields only (reserved underscore-prefixed fields are
// excluded). Each category is sorted lexicographically; callers should treat
// them as sets.
type DocumentDiff struct {
	// Added lists fields present in B but absent in A.
	Added []string `json:"added"`
	// Removed lists fields present in A but absent in B.
	Removed []string `json:"removed"`
	// Changed lists fields present in both with unequal values.
	Changed []string `json:"changed"`
	// Unchanged lists fields present in both with equal values.
	Unchanged []string `json:"unchanged"`
}

// CompareDocuments fetches both documents concurrently and diffs their
// application fields. A missing document fails with *NotFoundError naming
// the absent id; when both are missing the first id is reported.
func (c *Client) CompareDocuments(ctx context.Context, idA, idB string) (*DocumentDiff, error) {
	var (
		wg         sync.WaitGroup
		docA, docB api.Document
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		docA, errA = c.GetDocument(ctx, idA)
	}()
	go func() {
		defer wg.Done()
		docB, errB = c.GetDocument(ctx, idB)
	}()
	wg.Wait()
	if errA != nil {
		return nil, errA
	}
	if errB != nil {
		return nil, errB
	}
	if docA == nil {
		return nil, &NotFoundError{ID: idA}
	}
	if docB == nil {
		return nil, &NotFoundError{ID: idB}
	}

	return diffDocuments(docA.ContentFields(), docB.ContentFields()), nil
}

func diffDocuments(a, b api.Document) *DocumentDiff {
	diff := &DocumentDiff{
		Added:     []string{},
		Removed:   []string{},
		Changed:   []string{},
		Unchanged: []string{},
	}
	for name := range a {
		if _, ok := b[name]; !ok {
			diff.Removed = append(diff.Removed, name)
		}
	}
	for name, valueB := range b {
		valueA, ok := a[name]
		if !ok {
			diff.Added = append(diff.Added, name)
			continue
		}
		if jsonEqual(valueA, valueB) {
			diff.Unchanged = append(diff.Unchanged, name)
		} else {
			diff.Changed = append(diff.Changed, name)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Changed)
	sort.Strings(diff.Unchanged)
	return diff
}

// jsonEqual compares values by their serialized JSON form. Map keys are
// sorted by the encoder, so structurally equal values compare equal
// regardless of in-memory ordering.
func jsonEqual(a, b any) bool {
	da, errA := json.Marshal(a)
	db, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(da, db)
}
