package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taskbridge/todoist-mcp/internal/instrumentation"
	"github.com/taskbridge/todoist-mcp/internal/logging"
	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	clients     map[string]*todoist.Client // Maps account name to Todoist client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	// Initialize client map
	clients := make(map[string]*todoist.Client)

	// Try to create default client, but don't fail if token is missing
	// Clients will be lazily initialized when first needed
	if todoist.HasTokenForAccount("default") {
		client, err := todoist.NewClientForAccount("default")
		if err != nil {
			// Log but don't fail - will be re-attempted on first use
			slog.Warn("failed to create Todoist client for default account", logging.Err(err))
		} else {
			clients["default"] = client
		}
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		clients:  clients,
		shutdown: false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ClientForAccount returns the Todoist client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no token
func (sc *ServerContext) ClientForAccount(account string) *todoist.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.clients[account]; ok {
		return client
	}

	// Try to create client if token exists
	if !todoist.HasTokenForAccount(account) {
		return nil
	}

	client, err := todoist.NewClientForAccount(account)
	if err != nil {
		slog.Warn("failed to create Todoist client",
			logging.Account(account), logging.Err(err))
		return nil
	}

	sc.clients[account] = client
	return client
}

// Client returns the Todoist client for the default account
func (sc *ServerContext) Client() *todoist.Client {
	return sc.ClientForAccount("default")
}

// SetClientForAccount sets the Todoist client for a specific account
func (sc *ServerContext) SetClientForAccount(account string, client *todoist.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.clients[account] = client
}

// SetClient sets the Todoist client for the default account
func (sc *ServerContext) SetClient(client *todoist.Client) {
	sc.SetClientForAccount("default", client)
}

// SetMetrics sets the metrics recorder for tool instrumentation
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if not configured
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocations
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if not configured
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
