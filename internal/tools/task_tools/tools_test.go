package task_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskbridge/todoist-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterTaskTools(t *testing.T) {
	sc := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.1")

	if err := RegisterTaskTools(s, sc, false); err != nil {
		t.Fatalf("RegisterTaskTools() error = %v", err)
	}
}

func TestRegisterTaskToolsReadOnly(t *testing.T) {
	sc := newTestServerContext(t)
	s := mcpserver.NewMCPServer("test", "0.0.1")

	if err := RegisterTaskTools(s, sc, true); err != nil {
		t.Fatalf("RegisterTaskTools(readOnly) error = %v", err)
	}
}

func TestGetClientWithoutToken(t *testing.T) {
	sc := newTestServerContext(t)

	_, err := getClient("nonexistent", sc)
	if err == nil {
		t.Fatal("expected error for unconfigured account")
	}
}

func TestGetClientWithToken(t *testing.T) {
	t.Setenv("TODOIST_API_TOKEN_STAGING", "test-token")
	sc := newTestServerContext(t)

	client, err := getClient("staging", sc)
	if err != nil {
		t.Fatalf("getClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("expected client, got nil")
	}
	if client.Account() != "staging" {
		t.Errorf("Account() = %q, want %q", client.Account(), "staging")
	}
}
