package task_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// fakeSyncServer answers /sync with a status for each submitted command. The
// respond callback maps a command index to either "ok" or an error object.
func fakeSyncServer(t *testing.T, respond func(i int) any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse sync form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var commands []struct {
			UUID string `json:"uuid"`
		}
		if err := json.Unmarshal([]byte(r.Form.Get("commands")), &commands); err != nil {
			t.Errorf("failed to decode commands: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		syncStatus := make(map[string]any, len(commands))
		for i, cmd := range commands {
			syncStatus[cmd.UUID] = respond(i)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"sync_status": syncStatus})
	}))
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleBulkTasksMissingAction(t *testing.T) {
	sc := newTestServerContext(t)

	result, resp, _, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"taskIds": "1",
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil {
		t.Error("expected no bulk response")
	}
	if !result.IsError {
		t.Error("expected error result for missing action")
	}
}

func TestHandleBulkTasksMissingTaskIDs(t *testing.T) {
	sc := newTestServerContext(t)

	result, _, _, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action": "complete",
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing taskIds")
	}
}

func TestHandleBulkTasksNoToken(t *testing.T) {
	sc := newTestServerContext(t)

	result, _, _, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action":  "complete",
		"taskIds": "1",
	}, "nonexistent", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unconfigured account")
	}
	if !strings.Contains(resultText(t, result), "TODOIST_API_TOKEN_NONEXISTENT") {
		t.Error("expected error to name the token env var")
	}
}

func TestHandleBulkTasksValidationError(t *testing.T) {
	t.Setenv("TODOIST_API_TOKEN", "test-token")
	sc := newTestServerContext(t)

	// Move with no destination fails validation before anything is sent.
	result, resp, action, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action":  "move",
		"taskIds": []interface{}{"1", "2"},
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != nil {
		t.Error("expected no bulk response for invalid request")
	}
	if action != "move" {
		t.Errorf("action = %q, want %q", action, "move")
	}
	if !result.IsError {
		t.Error("expected error result for invalid move")
	}
	if !strings.Contains(resultText(t, result), "destination") {
		t.Errorf("expected destination validation message, got %q", resultText(t, result))
	}
}

func TestHandleBulkTasksCompleteSuccess(t *testing.T) {
	srv := fakeSyncServer(t, func(i int) any { return "ok" })
	defer srv.Close()

	t.Setenv("TODOIST_API_TOKEN", "test-token")
	t.Setenv("TODOIST_SYNC_URL", srv.URL)
	sc := newTestServerContext(t)

	result, resp, action, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action":  "complete",
		"taskIds": []interface{}{"1", "2", "1"},
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if action != "complete" {
		t.Errorf("action = %q, want %q", action, "complete")
	}

	if resp == nil || resp.Data == nil {
		t.Fatal("expected bulk response with summary")
	}
	if !resp.Success {
		t.Error("expected Success true")
	}
	if resp.Data.TotalTasks != 2 {
		t.Errorf("TotalTasks = %d, want 2 after deduplication", resp.Data.TotalTasks)
	}
	if resp.Data.Successful != 2 || resp.Data.Failed != 0 {
		t.Errorf("Successful/Failed = %d/%d, want 2/0", resp.Data.Successful, resp.Data.Failed)
	}
	if resp.Metadata == nil || !resp.Metadata.DeduplicationApplied {
		t.Error("expected deduplication to be recorded in metadata")
	}

	text := resultText(t, result)
	if !strings.Contains(text, `"success": true`) {
		t.Errorf("rendered response missing success flag: %s", text)
	}
}

func TestHandleBulkTasksPartialFailure(t *testing.T) {
	srv := fakeSyncServer(t, func(i int) any {
		if i == 1 {
			return map[string]any{"error": "Task not found", "error_code": 404, "http_code": 404}
		}
		return "ok"
	})
	defer srv.Close()

	t.Setenv("TODOIST_API_TOKEN", "test-token")
	t.Setenv("TODOIST_SYNC_URL", srv.URL)
	sc := newTestServerContext(t)

	result, resp, _, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action":    "update",
		"taskIds":   []interface{}{"1", "2"},
		"dueString": "tomorrow",
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if resp == nil || resp.Data == nil {
		t.Fatal("expected bulk response with summary")
	}
	if !resp.Success {
		t.Error("partial failure must keep Success true")
	}
	if resp.Data.Successful != 1 || resp.Data.Failed != 1 {
		t.Errorf("Successful/Failed = %d/%d, want 1/1", resp.Data.Successful, resp.Data.Failed)
	}

	var failed int
	for _, r := range resp.Data.Results {
		if !r.Success {
			failed++
			if r.Error == "" {
				t.Error("failed result must carry an error message")
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed results = %d, want 1", failed)
	}
}

func TestHandleBulkTasksUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("TODOIST_API_TOKEN", "test-token")
	t.Setenv("TODOIST_SYNC_URL", srv.URL)
	t.Setenv("TODOIST_HTTP_RETRIES", "0")
	sc := newTestServerContext(t)

	result, resp, _, err := handleBulkTasks(context.Background(), map[string]interface{}{
		"action":  "complete",
		"taskIds": "1",
	}, "default", sc)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("pipeline failure is rendered, not an error result: %s", resultText(t, result))
	}

	if resp == nil {
		t.Fatal("expected bulk response")
	}
	if resp.Success {
		t.Error("expected Success false for upstream failure")
	}
	if resp.Data != nil {
		t.Error("expected no summary for upstream failure")
	}
	if resp.Error == "" {
		t.Error("expected pipeline error message")
	}
}
