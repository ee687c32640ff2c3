package project_tools

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

// RegisterProjectTools registers all project-related tools with the MCP server
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List projects tool
	listProjectsTool := mcp.NewTool("todoist_list_projects",
		mcp.WithDescription("List all projects"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandlerWithService("todoist_list_projects", "rest", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			projects, err := client.ListProjects(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
			}

			result, _ := json.MarshalIndent(projects, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	// Get project tool
	getProjectTool := mcp.NewTool("todoist_get_project",
		mcp.WithDescription("Get details of a specific project"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithService("todoist_get_project", "rest", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := client.GetProject(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get project: %v", err)), nil
			}

			result, _ := json.MarshalIndent(project, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if !readOnly {
		registerProjectWriteTools(s, sc)
	}

	return nil
}

func registerProjectWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create project tool
	createProjectTool := mcp.NewTool("todoist_create_project",
		mcp.WithDescription("Create a new project"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The project name"),
		),
		mcp.WithString("parentId",
			mcp.Description("Parent project ID to create a sub-project"),
		),
		mcp.WithString("color",
			mcp.Description("Project color name, e.g. 'berry_red'"),
		),
		mcp.WithString("viewStyle",
			mcp.Description("View style: 'list' or 'board'"),
		),
	)

	s.AddTool(createProjectTool, common.InstrumentedToolHandlerWithService("todoist_create_project", "rest", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			input := todoist.ProjectInput{Name: name}
			if v, ok := args["parentId"].(string); ok {
				input.ParentID = v
			}
			if v, ok := args["color"].(string); ok {
				input.Color = v
			}
			if v, ok := args["viewStyle"].(string); ok {
				input.ViewStyle = v
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := client.CreateProject(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create project: %v", err)), nil
			}

			result, _ := json.MarshalIndent(project, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Project created successfully:\n%s", string(result))), nil
		}))

	// Update project tool
	updateProjectTool := mcp.NewTool("todoist_update_project",
		mcp.WithDescription("Update an existing project"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project to update"),
		),
		mcp.WithString("name",
			mcp.Description("New name for the project"),
		),
		mcp.WithString("color",
			mcp.Description("New project color name"),
		),
		mcp.WithString("viewStyle",
			mcp.Description("New view style: 'list' or 'board'"),
		),
	)

	s.AddTool(updateProjectTool, common.InstrumentedToolHandlerWithService("todoist_update_project", "rest", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}

			input := todoist.ProjectInput{}
			if v, ok := args["name"].(string); ok {
				input.Name = v
			}
			if v, ok := args["color"].(string); ok {
				input.Color = v
			}
			if v, ok := args["viewStyle"].(string); ok {
				input.ViewStyle = v
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := client.UpdateProject(ctx, projectID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update project: %v", err)), nil
			}

			result, _ := json.MarshalIndent(project, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Project updated successfully:\n%s", string(result))), nil
		}))

	// Delete project tool
	deleteProjectTool := mcp.NewTool("todoist_delete_project",
		mcp.WithDescription("Delete a project and all of its tasks"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project to delete"),
		),
	)

	s.AddTool(deleteProjectTool, common.InstrumentedToolHandlerWithService("todoist_delete_project", "rest", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteProject(ctx, projectID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete project: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted successfully", projectID)), nil
		}))
}
