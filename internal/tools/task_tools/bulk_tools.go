package task_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskbridge/todoist-mcp/internal/bulk"
	"github.com/taskbridge/todoist-mcp/internal/instrumentation"
	"github.com/taskbridge/todoist-mcp/internal/server"
	"github.com/taskbridge/todoist-mcp/internal/todoist"
	"github.com/taskbridge/todoist-mcp/internal/tools/common"
)

// registerBulkTool registers the batched task mutation tool. The tool applies
// one action to many tasks through a single sync call, so a 50-task update
// costs one round trip instead of fifty.
func registerBulkTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	bulkTool := mcp.NewTool("todoist_bulk_tasks",
		mcp.WithDescription("Apply one action (update, move, complete, uncomplete) to many tasks in a single batched call. Partial failures are reported per task."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("The action to apply: 'update', 'move', 'complete', or 'uncomplete'"),
		),
		mcp.WithString("taskIds",
			mcp.Required(),
			mcp.Description("Task ID or array of task IDs to operate on. Duplicates are removed before submission."),
		),
		mcp.WithString("content",
			mcp.Description("New content (title), for 'update'"),
		),
		mcp.WithString("description",
			mcp.Description("New description, for 'update'"),
		),
		mcp.WithString("dueString",
			mcp.Description("New human-readable due date, for 'update'"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority from 1 (normal) to 4 (urgent), for 'update'"),
		),
		mcp.WithString("labels",
			mcp.Description("Replacement label set (string or array of strings), for 'update'"),
		),
		mcp.WithString("projectId",
			mcp.Description("Destination project, for 'move'"),
		),
		mcp.WithString("sectionId",
			mcp.Description("Destination section, for 'move'"),
		),
		mcp.WithString("parentId",
			mcp.Description("Destination parent task, for 'move'"),
		),
	)

	// The bulk tool instruments itself instead of going through the common
	// wrapper: the audit record carries per-batch task counts, and the sync
	// command metrics need the reconciled summary.
	s.AddTool(bulkTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		args := request.GetArguments()
		account := common.GetAccountFromArgs(args)

		invocation := instrumentation.NewToolInvocation("todoist_bulk_tasks").
			WithSpanContext(ctx).
			WithService(instrumentation.ServiceSync, instrumentation.OperationBulk).
			WithAccount(account)

		result, resp, action, err := handleBulkTasks(ctx, args, account, sc)

		finishBulkInvocation(ctx, sc, invocation, action, resp, result, err, time.Since(start))
		return result, err
	})
}

// handleBulkTasks parses the arguments, runs the bulk pipeline, and renders
// the response. The *bulk.Response and action are returned alongside the tool
// result so the caller can record batch metrics.
func handleBulkTasks(ctx context.Context, args map[string]interface{}, account string, sc *server.ServerContext) (*mcp.CallToolResult, *bulk.Response, string, error) {
	action, ok := args["action"].(string)
	if !ok || action == "" {
		return mcp.NewToolResultError("action is required"), nil, "", nil
	}

	taskIDs, err := common.ParseStringOrArray(args["taskIds"], "taskIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil, action, nil
	}

	params := bulk.Params{}
	if v, ok := args["content"].(string); ok {
		params.Content = v
	}
	if v, ok := args["description"].(string); ok {
		params.Description = v
	}
	if v, ok := args["dueString"].(string); ok {
		params.DueString = v
	}
	if v, ok := args["priority"].(float64); ok {
		params.Priority = int(v)
	}
	if raw, ok := args["labels"]; ok && raw != nil {
		labels, err := common.ParseStringOrArray(raw, "labels")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil, action, nil
		}
		params.Labels = labels
	}
	if v, ok := args["projectId"].(string); ok {
		params.ProjectID = v
	}
	if v, ok := args["sectionId"].(string); ok {
		params.SectionID = v
	}
	if v, ok := args["parentId"].(string); ok {
		params.ParentID = v
	}

	client, err := getClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil, action, nil
	}

	engine := bulk.NewEngine(client, slog.Default())
	resp, err := engine.Execute(ctx, bulk.Request{
		Action:  bulk.Action(action),
		TaskIDs: taskIDs,
		Params:  params,
	})
	if err != nil {
		// Validation failures are user errors, not tool failures.
		var verr *todoist.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil, action, nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Bulk operation failed: %v", err)), nil, action, nil
	}

	rendered, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(rendered)), resp, action, nil
}

// finishBulkInvocation records metrics and the audit entry for one bulk call.
func finishBulkInvocation(ctx context.Context, sc *server.ServerContext, invocation *instrumentation.ToolInvocation, action string, resp *bulk.Response, result *mcp.CallToolResult, err error, duration time.Duration) {
	status := instrumentation.StatusSuccess
	switch {
	case err != nil:
		status = instrumentation.StatusError
		invocation.CompleteWithError(err)
	case result != nil && result.IsError:
		status = instrumentation.StatusError
		invocation.Complete(false, nil)
	default:
		invocation.CompleteSuccess()
	}

	if resp != nil && resp.Data != nil {
		invocation.WithTaskCounts(resp.Data.TotalTasks, resp.Data.Failed)
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordToolInvocation(ctx, "todoist_bulk_tasks", status, duration)
		metrics.RecordAPIOperation(ctx, instrumentation.ServiceSync, instrumentation.OperationBulk, status, duration)
		if resp != nil && resp.Data != nil && action != "" {
			metrics.RecordSyncCommands(ctx, action, resp.Data.Successful, resp.Data.Failed)
		}
	}

	if auditLogger := sc.AuditLogger(); auditLogger != nil {
		auditLogger.LogToolInvocation(invocation)
	}
}
