package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"
	"pkt.systems/pslog"

	sanitymcp "github.com/Purple-Horizons/sanity-mcp"
	"github.com/Purple-Horizons/sanity-mcp/client"
	"github.com/Purple-Horizons/sanity-mcp/internal/svcfields"
)

// Gateway identity announced during the MCP handshake.
const (
	serverName    = "sanity-content-gateway"
	serverVersion = "0.1.0"
)

// Config controls gateway runtime behavior.
type Config struct {
	// Sanity is the upstream connection configuration.
	Sanity sanitymcp.Config
	// MetricsListen is an optional host:port for the Prometheus metrics
	// listener. Empty disables the listener; counters are kept either way.
	MetricsListen string
}

// Server is the gateway service contract.
type Server interface {
	Run(context.Context) error
}

// NewServerRequest wraps constructor inputs.
type NewServerRequest struct {
	Config Config
	Logger pslog.Logger
	// ClientOptions are passed through to the upstream client constructor.
	ClientOptions []client.Option
}

type server struct {
	cfg          Config
	logger       pslog.Logger
	lifecycleLog pslog.Logger
	toolLog      pslog.Logger
	content      *client.Client
	metrics      *toolMetrics
}

// NewServer constructs the Sanity MCP gateway service.
func NewServer(req NewServerRequest) (Server, error) {
	cfg := req.Config
	cfg.Sanity = cfg.Sanity.WithDefaults()

	logger := req.Logger
	if logger == nil {
		logger = pslog.NewStructured(context.Background(), os.Stderr).With("app", "sanity-mcp")
	}

	opts := append([]client.Option{
		client.WithLogger(svcfields.WithSubsystem(logger, "client.sdk")),
	}, req.ClientOptions...)
	content, err := client.New(cfg.Sanity, opts...)
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:          cfg,
		logger:       logger,
		lifecycleLog: svcfields.WithSubsystem(logger, "server.lifecycle.mcp"),
		toolLog:      svcfields.WithSubsystem(logger, "mcp.tools"),
		content:      content,
		metrics:      newToolMetrics(),
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	s.lifecycleLog.Info("starting sanity MCP gateway",
		"project_id", s.cfg.Sanity.ProjectID,
		"dataset", s.cfg.Sanity.Dataset,
		"api_version", s.cfg.Sanity.APIVersion,
		"cdn", s.content.UseCDN(),
		"authenticated", s.cfg.Sanity.HasToken())

	var metricsServer *http.Server
	if listen := strings.TrimSpace(s.cfg.MetricsListen); listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.handler())
		metricsServer = &http.Server{Addr: listen, Handler: mux}
		go func() {
			s.lifecycleLog.Info("metrics listener up", "listen", listen)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.lifecycleLog.Warn("metrics listener failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	mcpSrv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcpsdk.ServerOptions{
		Instructions: defaultServerInstructions(s.cfg),
	})
	s.registerTools(mcpSrv)

	err := mcpSrv.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.lifecycleLog.Info("sanity MCP gateway stopped")
	return nil
}

func (s *server) registerTools(srv *mcpsdk.Server) {
	descriptions := buildToolDescriptions(s.cfg)
	desc := func(name string) string {
		description, ok := descriptions[name]
		if !ok {
			panic(fmt.Sprintf("missing MCP tool description for %q", name))
		}
		return description
	}

	addTool(s, srv, toolQueryDocuments, desc, s.handleQueryDocuments)
	addTool(s, srv, toolGetDocument, desc, s.handleGetDocument)
	addTool(s, srv, toolListByType, desc, s.handleListByType)
	addTool(s, srv, toolSearchContent, desc, s.handleSearchContent)
	addTool(s, srv, toolCountDocuments, desc, s.handleCountDocuments)
	addTool(s, srv, toolListDocumentTypes, desc, s.handleListDocumentTypes)
	addTool(s, srv, toolInferTypeSchema, desc, s.handleInferTypeSchema)

	addTool(s, srv, toolCreateDocument, desc, s.handleCreateDocument)
	addTool(s, srv, toolUpdateDocument, desc, s.handleUpdateDocument)
	addTool(s, srv, toolPatchDocument, desc, s.handlePatchDocument)
	addTool(s, srv, toolDeleteDocument, desc, s.handleDeleteDocument)
	addTool(s, srv, toolBulkMutate, desc, s.handleBulkMutate)

	addTool(s, srv, toolPublishDocument, desc, s.handlePublishDocument)
	addTool(s, srv, toolUnpublishDocument, desc, s.handleUnpublishDocument)
	addTool(s, srv, toolGetDraftStatus, desc, s.handleGetDraftStatus)
	addTool(s, srv, toolCompareDocuments, desc, s.handleCompareDocuments)
	addTool(s, srv, toolFindReferences, desc, s.handleFindReferences)
	addTool(s, srv, toolGetHistory, desc, s.handleGetHistory)
}

// addTool registers a tool with per-call instrumentation: each call gets a
// fresh request id carried as the correlation id, a log line with outcome and
// duration, a tool-call counter increment, and client errors converted into
// the structured error envelope.
func addTool[In, Out any](s *server, srv *mcpsdk.Server, name string, desc func(string) string, h mcpsdk.ToolHandlerFor[In, Out]) {
	wrapped := func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, Out, error) {
		callID := xid.New().String()
		ctx = client.WithCorrelationID(ctx, callID)
		start := time.Now()

		res, out, err := h(ctx, req, input)
		elapsed := time.Since(start)
		if err != nil {
			s.metrics.observe(name, outcomeError)
			s.toolLog.Warn("mcp.tool.error", "tool", name, "call_id", callID, "duration", elapsed, "error", err)
			var zero Out
			return nil, zero, toolError{Envelope: classifyToolError(err)}
		}
		s.metrics.observe(name, outcomeOK)
		s.toolLog.Debug("mcp.tool.ok", "tool", name, "call_id", callID, "duration", elapsed)
		return res, out, nil
	}
	mcpsdk.AddTool(srv, &mcpsdk.Tool{Name: name, Description: desc(name)}, wrapped)
}
