package api

import (
	"encoding/json"
	"testing"
)

func TestDocumentReservedAccessors(t *testing.T) {
	doc := Document{
		FieldID:        "drafts.post-1",
		FieldType:      "post",
		FieldRev:       "r9",
		FieldUpdatedAt: "2024-05-01T10:00:00Z",
		"title":        "T",
	}
	if doc.ID() != "drafts.post-1" || doc.Type() != "post" || doc.Rev() != "r9" {
		t.Fatalf("accessors: %q %q %q", doc.ID(), doc.Type(), doc.Rev())
	}
	if !doc.IsDraft() {
		t.Fatalf("expected draft")
	}
	if got := doc.UpdatedAt(); got != "2024-05-01T10:00:00Z" {
		t.Fatalf("updatedAt: %q", got)
	}
}

func TestDocumentContentFields(t *testing.T) {
	doc := Document{FieldID: "x", FieldRev: "r", "title": "T", "body": "B"}
	content := doc.ContentFields()
	if len(content) != 2 {
		t.Fatalf("content fields: %v", content)
	}
	if _, ok := content[FieldID]; ok {
		t.Fatalf("reserved field survived")
	}
	names := doc.FieldNames()
	if len(names) != 2 || names[0] != "body" || names[1] != "title" {
		t.Fatalf("field names: %v", names)
	}
}

func TestDraftIDHelpers(t *testing.T) {
	if PublishedID("drafts.a") != "a" || PublishedID("a") != "a" {
		t.Fatalf("PublishedID")
	}
	if DraftID("a") != "drafts.a" || DraftID("drafts.a") != "drafts.a" {
		t.Fatalf("DraftID")
	}
	if IsDraftID("a") || !IsDraftID("drafts.a") {
		t.Fatalf("IsDraftID")
	}
}

func TestMutationKindAndWireShape(t *testing.T) {
	muts := []Mutation{
		{Create: Document{"title": "a"}},
		{CreateOrReplace: Document{FieldID: "x"}},
		{CreateIfNotExists: Document{FieldID: "y"}},
		{Patch: &Patch{ID: "z", Set: map[string]any{"title": "b"}}},
		{Delete: &Delete{ID: "w"}},
	}
	kinds := []string{"create", "createOrReplace", "createIfNotExists", "patch", "delete"}
	for i, m := range muts {
		if m.Kind() != kinds[i] {
			t.Fatalf("kind %d: %q", i, m.Kind())
		}
	}
	if (Mutation{}).Kind() != "" {
		t.Fatalf("zero mutation should have empty kind")
	}

	// A sparse patch must not serialize absent instruction groups.
	data, err := json.Marshal(muts[3])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	patch := raw["patch"]
	if _, ok := patch["unset"]; ok {
		t.Fatalf("unset should be omitted: %s", data)
	}
	if _, ok := patch["inc"]; ok {
		t.Fatalf("inc should be omitted: %s", data)
	}
	if _, ok := patch["insert"]; ok {
		t.Fatalf("insert should be omitted: %s", data)
	}
}
