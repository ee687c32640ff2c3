package filter_tools

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

// RegisterFilterTools registers all saved-filter tools with the MCP server.
// Filters have no REST surface; these tools go through the Sync API.
func RegisterFilterTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List filters tool
	listFiltersTool := mcp.NewTool("todoist_list_filters",
		mcp.WithDescription("List all saved filters"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
	)

	s.AddTool(listFiltersTool, common.InstrumentedToolHandlerWithService("todoist_list_filters", "sync", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			filters, err := client.ListFilters(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list filters: %v", err)), nil
			}

			result, _ := json.MarshalIndent(filters, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if !readOnly {
		registerFilterWriteTools(s, sc)
	}

	return nil
}

func registerFilterWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create filter tool
	createFilterTool := mcp.NewTool("todoist_create_filter",
		mcp.WithDescription("Create a saved filter"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The filter name"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The filter query, e.g. 'today & p1'"),
		),
		mcp.WithString("color",
			mcp.Description("Filter color name, e.g. 'berry_red'"),
		),
		mcp.WithBoolean("favorite",
			mcp.Description("Mark the filter as a favorite"),
		),
	)

	s.AddTool(createFilterTool, common.InstrumentedToolHandlerWithService("todoist_create_filter", "sync", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}
			query, ok := args["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			input := todoist.FilterInput{Name: name, Query: query}
			if v, ok := args["color"].(string); ok {
				input.Color = v
			}
			if v, ok := args["favorite"].(bool); ok {
				input.IsFavorite = v
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.CreateFilter(ctx, input); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create filter: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Filter %q created successfully", name)), nil
		}))

	// Update filter tool
	updateFilterTool := mcp.NewTool("todoist_update_filter",
		mcp.WithDescription("Update a saved filter"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("filterId",
			mcp.Required(),
			mcp.Description("The ID of the filter to update"),
		),
		mcp.WithString("name",
			mcp.Description("New name for the filter"),
		),
		mcp.WithString("query",
			mcp.Description("New query for the filter"),
		),
		mcp.WithString("color",
			mcp.Description("New filter color name"),
		),
	)

	s.AddTool(updateFilterTool, common.InstrumentedToolHandlerWithService("todoist_update_filter", "sync", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			filterID, ok := args["filterId"].(string)
			if !ok || filterID == "" {
				return mcp.NewToolResultError("filterId is required"), nil
			}

			input := todoist.FilterInput{}
			if v, ok := args["name"].(string); ok {
				input.Name = v
			}
			if v, ok := args["query"].(string); ok {
				input.Query = v
			}
			if v, ok := args["color"].(string); ok {
				input.Color = v
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.UpdateFilter(ctx, filterID, input); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update filter: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Filter %s updated successfully", filterID)), nil
		}))

	// Delete filter tool
	deleteFilterTool := mcp.NewTool("todoist_delete_filter",
		mcp.WithDescription("Delete a saved filter"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("filterId",
			mcp.Required(),
			mcp.Description("The ID of the filter to delete"),
		),
	)

	s.AddTool(deleteFilterTool, common.InstrumentedToolHandlerWithService("todoist_delete_filter", "sync", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			filterID, ok := args["filterId"].(string)
			if !ok || filterID == "" {
				return mcp.NewToolResultError("filterId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteFilter(ctx, filterID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete filter: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Filter %s deleted successfully", filterID)), nil
		}))
}
