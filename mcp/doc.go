// Package mcp provides the Sanity MCP gateway server.
//
// The package exposes a standalone MCP runtime that fronts a Sanity Content
// Lake dataset through the Go client SDK. It is intended for agent workflows
// that need to read, search, write, and publish content documents via MCP
// over stdio.
//
// # What this package does
//
//   - Serves MCP over stdio (one session per process)
//   - Registers the content tool surface for query/read/write/publish/diff
//   - Converts client errors into structured tool error envelopes
//   - Counts tool calls by tool and outcome, optionally served on a
//     Prometheus metrics listener
//
// The gateway process itself is stateless for content: every tool call is
// delegated to the upstream dataset through the client SDK. Write tools fail
// with an auth_required envelope when the gateway was started without an API
// token; read tools keep working against public datasets.
//
// # Constructor and lifecycle
//
// Build a server with NewServer and drive it with Run, which blocks until
// the MCP session ends or ctx is cancelled:
//
//	srv, err := mcp.NewServer(mcp.NewServerRequest{
//		Config: mcp.Config{Sanity: sanitymcp.Config{ProjectID: "zp7mbokg"}},
//		Logger: logger,
//	})
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package mcp
