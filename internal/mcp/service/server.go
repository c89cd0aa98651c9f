package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger"
	"github.com/emberhatch/menagerie/internal/mcp/conformance"
	"github.com/emberhatch/menagerie/internal/platform/branding"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the HTTP listen address. Defaults to localhost:8081 for
	// the HTTP transport so the server never binds beyond the local host
	// without an explicit address.
	HTTPAddr string
	// Locale selects the language for user-facing error messages.
	// Unsupported locales fall back to en-US.
	Locale string
}

// Dependencies carries the engines and storage the MCP surface is built on.
type Dependencies struct {
	Catalog  *catalog.Catalog
	Hatchery *hatchery.Generator
	Arena    *arena.Resolver
	Fusion   *fusion.Resolver
	Ledger   ledger.Store
}

func (d Dependencies) validate() error {
	if d.Catalog == nil {
		return fmt.Errorf("catalog is required")
	}
	if d.Hatchery == nil {
		return fmt.Errorf("hatchery generator is required")
	}
	if d.Arena == nil {
		return fmt.Errorf("arena resolver is required")
	}
	if d.Fusion == nil {
		return fmt.Errorf("fusion resolver is required")
	}
	if d.Ledger == nil {
		return fmt.Errorf("outcome ledger is required")
	}
	return nil
}

// Server hosts the MCP server over the game engines and the outcome ledger.
type Server struct {
	mcpServer *mcp.Server
	store     ledger.Store
}

// New assembles an MCP server with every tool and resource registered. The
// returned server owns the ledger store and closes it when serving stops.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})

	for _, module := range newMCPRegistrationModules(deps, cfg.Locale) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}

	conformance.Register(mcpServer)

	return &Server{mcpServer: mcpServer, store: deps.Ledger}, nil
}

// completionHandler answers completion requests with no suggestions.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation. Startup chooses stdio for local tools and HTTP for remote
// integrations; both transports serve the same tool and resource set.
func Run(ctx context.Context, cfg Config, deps Dependencies) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		server, err := New(cfg, deps)
		if err != nil {
			return err
		}
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg, deps)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the ledger store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}

// serveWithTransport starts the MCP server using the provided transport.
// The server and its ledger store share a single exit path so cleanup is
// consistent for both stdio and HTTP runs.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close outcome ledger: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close outcome ledger: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
