package section_tools

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

// RegisterSectionTools registers all section-related tools with the MCP server
func RegisterSectionTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List sections tool
	listSectionsTool := mcp.NewTool("todoist_list_sections",
		mcp.WithDescription("List sections, optionally scoped to a project"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Description("Only return sections in this project"),
		),
	)

	s.AddTool(listSectionsTool, common.InstrumentedToolHandlerWithService("todoist_list_sections", "rest", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			projectID, _ := args["projectId"].(string)

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sections, err := client.ListSections(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list sections: %v", err)), nil
			}

			result, _ := json.MarshalIndent(sections, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	// Get section tool
	getSectionTool := mcp.NewTool("todoist_get_section",
		mcp.WithDescription("Get details of a specific section"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("sectionId",
			mcp.Required(),
			mcp.Description("The ID of the section to retrieve"),
		),
	)

	s.AddTool(getSectionTool, common.InstrumentedToolHandlerWithService("todoist_get_section", "rest", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			sectionID, ok := args["sectionId"].(string)
			if !ok || sectionID == "" {
				return mcp.NewToolResultError("sectionId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			section, err := client.GetSection(ctx, sectionID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get section: %v", err)), nil
			}

			result, _ := json.MarshalIndent(section, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if !readOnly {
		registerSectionWriteTools(s, sc)
	}

	return nil
}

func registerSectionWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create section tool
	createSectionTool := mcp.NewTool("todoist_create_section",
		mcp.WithDescription("Create a new section in a project"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The project to create the section in"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The section name"),
		),
	)

	s.AddTool(createSectionTool, common.InstrumentedToolHandlerWithService("todoist_create_section", "rest", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}
			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			section, err := client.CreateSection(ctx, projectID, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create section: %v", err)), nil
			}

			result, _ := json.MarshalIndent(section, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Section created successfully:\n%s", string(result))), nil
		}))

	// Update section tool
	updateSectionTool := mcp.NewTool("todoist_update_section",
		mcp.WithDescription("Rename a section"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("sectionId",
			mcp.Required(),
			mcp.Description("The ID of the section to rename"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The new section name"),
		),
	)

	s.AddTool(updateSectionTool, common.InstrumentedToolHandlerWithService("todoist_update_section", "rest", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			sectionID, ok := args["sectionId"].(string)
			if !ok || sectionID == "" {
				return mcp.NewToolResultError("sectionId is required"), nil
			}
			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			section, err := client.UpdateSection(ctx, sectionID, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update section: %v", err)), nil
			}

			result, _ := json.MarshalIndent(section, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Section updated successfully:\n%s", string(result))), nil
		}))

	// Delete section tool
	deleteSectionTool := mcp.NewTool("todoist_delete_section",
		mcp.WithDescription("Delete a section and all of its tasks"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("sectionId",
			mcp.Required(),
			mcp.Description("The ID of the section to delete"),
		),
	)

	s.AddTool(deleteSectionTool, common.InstrumentedToolHandlerWithService("todoist_delete_section", "rest", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			sectionID, ok := args["sectionId"].(string)
			if !ok || sectionID == "" {
				return mcp.NewToolResultError("sectionId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteSection(ctx, sectionID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete section: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Section %s deleted successfully", sectionID)), nil
		}))
}
