package reminder_tools

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

const accountDescription = "Account name (default: 'default'). Maps to the TODOIST_API_TOKEN_<NAME> environment variable."

// RegisterReminderTools registers all reminder tools with the MCP server.
// Reminders have no REST surface; these tools go through the Sync API.
func RegisterReminderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List reminders tool
	listRemindersTool := mcp.NewTool("todoist_list_reminders",
		mcp.WithDescription("List all reminders"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
	)

	s.AddTool(listRemindersTool, common.InstrumentedToolHandlerWithService("todoist_list_reminders", "sync", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			reminders, err := client.ListReminders(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list reminders: %v", err)), nil
			}

			result, _ := json.MarshalIndent(reminders, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if !readOnly {
		registerReminderWriteTools(s, sc)
	}

	return nil
}

func registerReminderWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Add reminder tool
	addReminderTool := mcp.NewTool("todoist_add_reminder",
		mcp.WithDescription("Add a reminder to a task. Absolute reminders fire at a given time, relative reminders fire a number of minutes before the task is due."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task to remind about"),
		),
		mcp.WithString("type",
			mcp.Description("Reminder type: 'absolute' (default) or 'relative'"),
		),
		mcp.WithString("dueString",
			mcp.Description("When to fire an absolute reminder, e.g. 'tomorrow at 9am'"),
		),
		mcp.WithNumber("minuteOffset",
			mcp.Description("Minutes before the task due time for a relative reminder"),
		),
	)

	s.AddTool(addReminderTool, common.InstrumentedToolHandlerWithService("todoist_add_reminder", "sync", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			input := todoist.ReminderInput{ItemID: taskID}
			if v, ok := args["type"].(string); ok {
				input.Type = v
			}
			if v, ok := args["dueString"].(string); ok {
				input.DueString = v
			}
			if v, ok := args["minuteOffset"].(float64); ok {
				input.MinuteOffset = int(v)
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.AddReminder(ctx, input); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add reminder: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Reminder added to task %s successfully", taskID)), nil
		}))

	// Delete reminder tool
	deleteReminderTool := mcp.NewTool("todoist_delete_reminder",
		mcp.WithDescription("Delete a reminder"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("reminderId",
			mcp.Required(),
			mcp.Description("The ID of the reminder to delete"),
		),
	)

	s.AddTool(deleteReminderTool, common.InstrumentedToolHandlerWithService("todoist_delete_reminder", "sync", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			reminderID, ok := args["reminderId"].(string)
			if !ok || reminderID == "" {
				return mcp.NewToolResultError("reminderId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteReminder(ctx, reminderID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete reminder: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted successfully", reminderID)), nil
		}))
}
