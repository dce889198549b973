// Package sanitymcp holds the connection configuration shared by the Sanity
// Content Lake client and the MCP tool gateway built on top of it.
//
// The configuration is constructed once at startup and never mutated. The
// client derives every endpoint decision (CDN vs. direct API host, bearer
// credential, dataset path) from it per request, so a single configured
// client is safe for arbitrary concurrent use.
//
// # Minimal setup
//
//	cfg := sanitymcp.Config{
//	    ProjectID: "zx7k91qa",
//	    Dataset:   "production",
//	    Token:     os.Getenv("SANITY_TOKEN"),
//	}
//	cli, err := client.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Dataset defaults to "production" and APIVersion to DefaultAPIVersion when
// left empty. When no token is configured the client reads through the CDN
// subdomain and write operations fail locally with an auth error; setting
// Token switches reads to the direct API host unless UseCDN overrides it.
//
// The cmd/sanity-mcp binary owns the one-time read of ambient configuration
// (SANITY_* environment variables and flags) and fails fast on a missing
// project id before constructing the client.
package sanitymcp
