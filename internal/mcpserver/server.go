// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasvariant passes and the variant build as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasvariant"
	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasvariant MCP server: derives the published variants of the AppVeyor OpenAPI document.

Tools:
- transform: apply one named pass (flatten, root-to-user, v2-to-v1, oas3-to-oas2, swagger) to a document
- build: derive every variant from an AppVeyor v1 OpenAPI 3 document

Configuration: defaults are configurable via OASVARIANT_MCP_* environment variables set in your MCP client config.

Key settings:
- OASVARIANT_MCP_CACHE_ENABLED (default: true): cache decoded input documents
- OASVARIANT_MCP_MAX_INLINE_SIZE (default: 10MiB): limit for inline content
- OASVARIANT_MCP_BUILD_PARALLELISM (default: 4): concurrent conversions per build
- OASVARIANT_MCP_BUILD_TIMEOUT (default: 2m): deadline for one build`

// tools carries the collaborators shared by the tool handlers.
type tools struct {
	conv   dialect.Converter
	logger document.Logger
}

// Option configures the server.
type Option func(*tools)

// WithConverter replaces the OpenAPI 3 to 2.0 converter.
func WithConverter(c dialect.Converter) Option {
	return func(t *tools) { t.conv = c }
}

// WithLogger sets the logger used by the tools.
func WithLogger(l document.Logger) Option {
	return func(t *tools) { t.logger = l }
}

func newTools(opts ...Option) *tools {
	t := &tools{logger: document.NopLogger{}}
	for _, opt := range opts {
		opt(t)
	}
	if t.conv == nil {
		t.conv = dialect.NewOASConverter(dialect.WithLogger(t.logger))
	}
	return t
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	return newServer(opts...).Run(ctx, &mcp.StdioTransport{})
}

func newServer(opts ...Option) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasvariant", Version: oasvariant.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, newTools(opts...))
	return server
}

func registerAllTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform",
		Description: "Apply one named pass to an OpenAPI document. Passes: flatten (flatten the notification discriminators), root-to-user (v1 to v2 addressing), v2-to-v1 (v2 to v1 addressing), oas3-to-oas2 (convert and tune to OpenAPI 2.0), swagger (rename to the legacy appveyor-swagger names). Use output to write to a file instead of returning inline.",
	}, t.handleTransform)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build",
		Description: "Derive every variant (openapi{3|2}-v{1|2}[-flat] and swagger) from an AppVeyor v1 OpenAPI 3 document. Use only to select variants by glob pattern. Use output_dir to write <name>.json files; otherwise the variants are returned inline.",
	}, t.handleBuild)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
