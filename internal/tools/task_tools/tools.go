package task_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/taskbridge/todoist-mcp/internal/server"
	"github.com/taskbridge/todoist-mcp/internal/todoist"
	"github.com/taskbridge/todoist-mcp/internal/tools/common"
)

// getClient retrieves or creates a Todoist client for the specified account
func getClient(account string, sc *server.ServerContext) (*todoist.Client, error) {
	client := sc.ClientForAccount(account)
	if client == nil {
		return nil, fmt.Errorf("no Todoist API token configured for account %q: set %s",
			account, todoist.TokenEnvVar(account))
	}
	return client, nil
}

// accountDescription is shared by every tool's account argument.
const accountDescription = "Account name (default: 'default'). Maps to the TODOIST_API_TOKEN_<NAME> environment variable."

// RegisterTaskTools registers all task-related tools with the MCP server
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)

	if !readOnly {
		registerWriteTools(s, sc)
		registerBulkTool(s, sc)
	}

	return nil
}

// registerReadTools registers the read-only task tools, always available.
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// List tasks tool
	listTasksTool := mcp.NewTool("todoist_list_tasks",
		mcp.WithDescription("List active tasks with optional filters"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Description("Only return tasks in this project"),
		),
		mcp.WithString("sectionId",
			mcp.Description("Only return tasks in this section"),
		),
		mcp.WithString("label",
			mcp.Description("Only return tasks carrying this label"),
		),
		mcp.WithString("filter",
			mcp.Description("Todoist filter query, e.g. 'today | overdue'"),
		),
		mcp.WithString("ids",
			mcp.Description("Task ID or array of task IDs to fetch directly"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandlerWithService("todoist_list_tasks", "rest", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			filter := todoist.TaskFilter{}
			if v, ok := args["projectId"].(string); ok {
				filter.ProjectID = v
			}
			if v, ok := args["sectionId"].(string); ok {
				filter.SectionID = v
			}
			if v, ok := args["label"].(string); ok {
				filter.Label = v
			}
			if v, ok := args["filter"].(string); ok {
				filter.Filter = v
			}
			if raw, ok := args["ids"]; ok && raw != nil {
				ids, err := common.ParseStringOrArray(raw, "ids")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				filter.IDs = ids
			}

			tasks, err := client.ListTasks(ctx, filter)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
			}

			result, _ := json.MarshalIndent(tasks, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	// Get task tool
	getTaskTool := mcp.NewTool("todoist_get_task",
		mcp.WithDescription("Get details of a specific task"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to retrieve"),
		),
	)

	s.AddTool(getTaskTool, common.InstrumentedToolHandlerWithService("todoist_get_task", "rest", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.GetTask(ctx, taskID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))
}

// registerWriteTools registers the mutating single-task tools.
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create task tool
	createTaskTool := mcp.NewTool("todoist_create_task",
		mcp.WithDescription("Create a new task"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The task content (title)"),
		),
		mcp.WithString("description",
			mcp.Description("Longer description for the task"),
		),
		mcp.WithString("projectId",
			mcp.Description("Project to create the task in (default: Inbox)"),
		),
		mcp.WithString("sectionId",
			mcp.Description("Section to create the task in"),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent task ID to create a subtask"),
		),
		mcp.WithString("dueString",
			mcp.Description("Human-readable due date, e.g. 'tomorrow at 12:00'"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority from 1 (normal) to 4 (urgent)"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithService("todoist_create_task", "rest", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			content, ok := args["content"].(string)
			if !ok || content == "" {
				return mcp.NewToolResultError("content is required"), nil
			}

			input := todoist.TaskInput{Content: content}
			if v, ok := args["description"].(string); ok {
				input.Description = v
			}
			if v, ok := args["projectId"].(string); ok {
				input.ProjectID = v
			}
			if v, ok := args["sectionId"].(string); ok {
				input.SectionID = v
			}
			if v, ok := args["parentId"].(string); ok {
				input.ParentID = v
			}
			if v, ok := args["dueString"].(string); ok {
				input.DueString = v
			}
			if v, ok := args["priority"].(float64); ok {
				input.Priority = int(v)
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.CreateTask(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task created successfully:\n%s", string(result))), nil
		}))

	// Update task tool
	updateTaskTool := mcp.NewTool("todoist_update_task",
		mcp.WithDescription("Update an existing task"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString("content",
			mcp.Description("New content (title) for the task"),
		),
		mcp.WithString("description",
			mcp.Description("New description for the task"),
		),
		mcp.WithString("dueString",
			mcp.Description("New human-readable due date"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority from 1 (normal) to 4 (urgent)"),
		),
		mcp.WithString("labels",
			mcp.Description("Replacement label set (string or array of strings)"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithService("todoist_update_task", "rest", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			input := todoist.TaskInput{}
			if v, ok := args["content"].(string); ok {
				input.Content = v
			}
			if v, ok := args["description"].(string); ok {
				input.Description = v
			}
			if v, ok := args["dueString"].(string); ok {
				input.DueString = v
			}
			if v, ok := args["priority"].(float64); ok {
				input.Priority = int(v)
			}
			if raw, ok := args["labels"]; ok && raw != nil {
				labels, err := common.ParseStringOrArray(raw, "labels")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				input.Labels = labels
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.UpdateTask(ctx, taskID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
			}

			result, _ := json.MarshalIndent(task, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Task updated successfully:\n%s", string(result))), nil
		}))

	// Complete task tool
	completeTaskTool := mcp.NewTool("todoist_complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to complete"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithService("todoist_complete_task", "rest", "complete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.CloseTask(ctx, taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task %s completed successfully", taskID)), nil
		}))

	// Reopen task tool
	reopenTaskTool := mcp.NewTool("todoist_reopen_task",
		mcp.WithDescription("Reopen a completed task"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to reopen"),
		),
	)

	s.AddTool(reopenTaskTool, common.InstrumentedToolHandlerWithService("todoist_reopen_task", "rest", "reopen", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.ReopenTask(ctx, taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to reopen task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task %s reopened successfully", taskID)), nil
		}))

	// Delete task tool
	deleteTaskTool := mcp.NewTool("todoist_delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to delete"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithService("todoist_delete_task", "rest", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteTask(ctx, taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully", taskID)), nil
		}))
}
