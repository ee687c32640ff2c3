package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewPrintfAdapter_WithNil(t *testing.T) {
	adapter := NewPrintfAdapter(nil)
	if adapter == nil {
		t.Fatal("NewPrintfAdapter returned nil")
	}
	if adapter.logger == nil {
		t.Error("adapter.logger should not be nil when created with nil")
	}
}

func TestNewPrintfAdapter_WithLogger(t *testing.T) {
	logger := slog.Default()
	adapter := NewPrintfAdapter(logger)
	if adapter.Logger() != logger {
		t.Error("Logger() should return the underlying logger")
	}
}

func TestPrintfAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewPrintfAdapter(logger)

	adapter.Errorf("failed after %d attempts", 3)
	adapter.Warnf("retrying %s", "sync")
	adapter.Debugf("request to %s", "/sync")

	out := buf.String()
	if !strings.Contains(out, "failed after 3 attempts") {
		t.Errorf("Errorf output missing, got: %s", out)
	}
	if !strings.Contains(out, "retrying sync") {
		t.Errorf("Warnf output missing, got: %s", out)
	}
	if !strings.Contains(out, "request to /sync") {
		t.Errorf("Debugf output missing, got: %s", out)
	}
}
