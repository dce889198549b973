// Package client provides the Go SDK for talking to a Sanity Content Lake
// dataset over HTTP. It exposes the typed document, query, and mutation
// operations the MCP gateway dispatches to, and can be embedded directly in
// workers and administrative tools.
//
// # Quick start
//
//	cli, err := client.New(sanitymcp.Config{
//	    ProjectID: "zx7k91qa",
//	    Token:     os.Getenv("SANITY_TOKEN"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := cli.GetDocument(ctx, "post-1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if doc == nil {
//	    // absent documents are nil, never an error
//	}
//
// The client holds no state beyond its immutable configuration: every
// operation is independent, and a single instance may be used from any
// number of goroutines without coordination. Reads go to the CDN subdomain
// for anonymous clients and to the direct API host otherwise; writes always
// use the direct host. The client performs no retries and imposes no
// timeouts of its own — cancellation and deadlines belong to the caller's
// context.
//
// Operations that render caller-supplied fragments directly into the query
// language (the order clause of ListDocumentsByType, the filter of
// CountDocuments, the type list of SearchContent) are deliberate trust
// boundaries: the client forwards them verbatim without escaping, so they
// must never be populated from untrusted input.
//
// # Errors
//
// Failed reads surface *QueryError and failed writes *MutationError, both
// carrying the HTTP status and response body. Write operations on a client
// without a configured token fail locally with *AuthRequiredError before
// any network I/O. Derived operations that need a document to exist
// (publish, unpublish, compare) fail with *NotFoundError naming the missing
// id. Use errors.As to branch on the taxonomy.
package client
