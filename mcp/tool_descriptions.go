package mcp

import (
	"fmt"
	"strings"
)

const (
	toolQueryDocuments    = "query_documents"
	toolGetDocument       = "get_document"
	toolListByType        = "list_documents_by_type"
	toolSearchContent     = "search_content"
	toolCountDocuments    = "count_documents"
	toolListDocumentTypes = "list_document_types"
	toolInferTypeSchema   = "infer_type_schema"
	toolCreateDocument    = "create_document"
	toolUpdateDocument    = "update_document"
	toolPatchDocument     = "patch_document"
	toolDeleteDocument    = "delete_document"
	toolBulkMutate        = "bulk_mutate"
	toolPublishDocument   = "publish_document"
	toolUnpublishDocument = "unpublish_document"
	toolGetDraftStatus    = "get_draft_status"
	toolCompareDocuments  = "compare_documents"
	toolFindReferences    = "find_references"
	toolGetHistory        = "get_history"
)

var mcpToolNames = []string{
	toolQueryDocuments,
	toolGetDocument,
	toolListByType,
	toolSearchContent,
	toolCountDocuments,
	toolListDocumentTypes,
	toolInferTypeSchema,
	toolCreateDocument,
	toolUpdateDocument,
	toolPatchDocument,
	toolDeleteDocument,
	toolBulkMutate,
	toolPublishDocument,
	toolUnpublishDocument,
	toolGetDraftStatus,
	toolCompareDocuments,
	toolFindReferences,
	toolGetHistory,
}

type toolContract struct {
	Purpose  string
	UseWhen  string
	Requires string
	Effects  string
	Next     string
}

func formatToolDescription(spec toolContract) string {
	lines := []string{
		"Purpose: " + spec.Purpose,
		"Use when: " + spec.UseWhen,
		"Requires: " + spec.Requires,
		"Effects: " + spec.Effects,
		"Next: " + spec.Next,
	}
	return strings.Join(lines, "\n")
}

func buildToolDescriptions(cfg Config) map[string]string {
	dataset := cfg.Sanity.Dataset
	readRequires := "read access to dataset " + dataset
	writeRequires := "an API token with write access to dataset " + dataset

	return map[string]string{
		toolQueryDocuments: formatToolDescription(toolContract{
			Purpose:  "Run a raw GROQ query with optional named parameters.",
			UseWhen:  "No narrower tool covers the read you need.",
			Requires: readRequires + "; parameters are JSON values bound as $name",
			Effects:  "Read-only.",
			Next:     "Use get_document or find_references to follow up on ids in the result.",
		}),
		toolGetDocument: formatToolDescription(toolContract{
			Purpose:  "Fetch a single document by id.",
			UseWhen:  "You know the exact document id (published or drafts.-prefixed).",
			Requires: readRequires,
			Effects:  "Read-only; found=false when the document does not exist.",
			Next:     "Use get_draft_status to see whether a draft counterpart exists.",
		}),
		toolListByType: formatToolDescription(toolContract{
			Purpose:  "Page through documents of one type, newest first by default.",
			UseWhen:  "Browsing content of a known type.",
			Requires: readRequires + "; the order clause is passed through verbatim",
			Effects:  "Read-only.",
			Next:     "Use infer_type_schema to learn the fields a type carries.",
		}),
		toolSearchContent: formatToolDescription(toolContract{
			Purpose:  "Full-text search with relevance scoring across title, name, description, and body fields.",
			UseWhen:  "Locating content by words rather than by id or type.",
			Requires: readRequires,
			Effects:  "Read-only; results carry a _score field.",
			Next:     "Use get_document to fetch the full document for a hit.",
		}),
		toolCountDocuments: formatToolDescription(toolContract{
			Purpose:  "Count documents matching a GROQ filter expression.",
			UseWhen:  "You need a total without fetching documents.",
			Requires: readRequires,
			Effects:  "Read-only.",
			Next:     "Use query_documents to fetch the matching documents.",
		}),
		toolListDocumentTypes: formatToolDescription(toolContract{
			Purpose:  "List distinct application document types in the dataset.",
			UseWhen:  "Discovering what content the dataset holds.",
			Requires: readRequires,
			Effects:  "Read-only; system and asset types are excluded.",
			Next:     "Use infer_type_schema on a type of interest.",
		}),
		toolInferTypeSchema: formatToolDescription(toolContract{
			Purpose:  "Infer the field names of a document type from a live sample, with a total count.",
			UseWhen:  "You need a type's shape and no external schema is at hand.",
			Requires: readRequires,
			Effects:  "Read-only; fields reflect one sampled document.",
			Next:     "Use list_documents_by_type to browse documents of the type.",
		}),
		toolCreateDocument: formatToolDescription(toolContract{
			Purpose:  "Create a document, or replace it when the payload carries _id.",
			UseWhen:  "Adding new content.",
			Requires: writeRequires,
			Effects:  "Writes one document; an _id-less payload gets a generated id.",
			Next:     "Use publish_document if you created it under the drafts. prefix.",
		}),
		toolUpdateDocument: formatToolDescription(toolContract{
			Purpose:  "Replace a document's content wholesale at a known id.",
			UseWhen:  "You hold the complete intended document state.",
			Requires: writeRequires,
			Effects:  "Overwrites the document at the given id.",
			Next:     "Use patch_document instead for partial changes.",
		}),
		toolPatchDocument: formatToolDescription(toolContract{
			Purpose:  "Apply partial changes to a document: set, unset, inc, dec.",
			UseWhen:  "Changing specific fields without replacing the document.",
			Requires: writeRequires,
			Effects:  "Mutates only the supplied instruction groups.",
			Next:     "Use get_document to verify the result.",
		}),
		toolDeleteDocument: formatToolDescription(toolContract{
			Purpose:  "Delete a document by id.",
			UseWhen:  "Removing content permanently.",
			Requires: writeRequires,
			Effects:  "Destructive; deleting a published id leaves any drafts. counterpart in place.",
			Next:     "Use find_references first to check for inbound references.",
		}),
		toolBulkMutate: formatToolDescription(toolContract{
			Purpose:  "Submit several mutations as one atomic transaction, with an optional dry run.",
			UseWhen:  "Multiple writes must land together or not at all.",
			Requires: writeRequires,
			Effects:  "All-or-nothing; dry_run=true validates locally and performs no network call.",
			Next:     "Inspect per-mutation results for the affected ids.",
		}),
		toolPublishDocument: formatToolDescription(toolContract{
			Purpose:  "Promote a draft to its published id and remove the draft, atomically.",
			UseWhen:  "Draft content is ready to go live.",
			Requires: writeRequires + "; the drafts. document must exist",
			Effects:  "Replaces the published document and deletes the draft in one transaction.",
			Next:     "Use get_draft_status to confirm the final state.",
		}),
		toolUnpublishDocument: formatToolDescription(toolContract{
			Purpose:  "Retract a published document into a draft, atomically.",
			UseWhen:  "Content must come off the published surface but stay editable.",
			Requires: writeRequires + "; the published document must exist",
			Effects:  "Creates the drafts. copy and deletes the published document in one transaction.",
			Next:     "Use publish_document to re-publish later.",
		}),
		toolGetDraftStatus: formatToolDescription(toolContract{
			Purpose:  "Classify a document's draft lifecycle: published, draft, both, or none.",
			UseWhen:  "Deciding whether publish or unpublish applies.",
			Requires: readRequires,
			Effects:  "Read-only; the id is normalized to its published form.",
			Next:     "Use publish_document or unpublish_document accordingly.",
		}),
		toolCompareDocuments: formatToolDescription(toolContract{
			Purpose:  "Diff the application fields of two documents into added, removed, changed, and unchanged.",
			UseWhen:  "Reviewing a draft against its published version, or any two documents.",
			Requires: readRequires + "; both documents must exist",
			Effects:  "Read-only.",
			Next:     "Use publish_document when a draft diff looks right.",
		}),
		toolFindReferences: formatToolDescription(toolContract{
			Purpose:  "List documents that reference a given id.",
			UseWhen:  "Assessing the blast radius of a delete or rename.",
			Requires: readRequires,
			Effects:  "Read-only.",
			Next:     "Use get_document on referencing ids to inspect the references.",
		}),
		toolGetHistory: formatToolDescription(toolContract{
			Purpose:  "Fetch a document's revision history, newest first.",
			UseWhen:  "Auditing how a document changed over time.",
			Requires: "an API token with history access to dataset " + dataset,
			Effects:  "Read-only; degrades to a synthesized single-entry result when the history endpoint is unavailable.",
			Next:     "Use get_document for the current state.",
		}),
	}
}

func defaultServerInstructions(cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sanity content gateway for project %s, dataset %s (API %s).\n",
		cfg.Sanity.ProjectID, cfg.Sanity.Dataset, cfg.Sanity.APIVersion)
	b.WriteString("Reads go through GROQ; start with list_document_types and infer_type_schema to discover the content model, then query_documents or search_content.\n")
	if cfg.Sanity.HasToken() {
		b.WriteString("Write, publish, and history tools are available. Bulk writes are atomic; prefer bulk_mutate with dry_run=true to validate first.\n")
	} else {
		b.WriteString("No API token is configured: write, publish, and history tools will fail with auth_required. Read tools work against public datasets.\n")
	}
	b.WriteString("Draft documents live under the drafts. id prefix; use get_draft_status before publishing.")
	return b.String()
}
