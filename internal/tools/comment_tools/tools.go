package comment_tools

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

// RegisterCommentTools registers all comment-related tools with the MCP server
func RegisterCommentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List comments tool
	listCommentsTool := mcp.NewTool("todoist_list_comments",
		mcp.WithDescription("List comments on a task or project. Exactly one of taskId or projectId must be given."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Description("List comments on this task"),
		),
		mcp.WithString("projectId",
			mcp.Description("List comments on this project"),
		),
	)

	s.AddTool(listCommentsTool, common.InstrumentedToolHandlerWithService("todoist_list_comments", "rest", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			taskID, _ := args["taskId"].(string)
			projectID, _ := args["projectId"].(string)
			if (taskID == "") == (projectID == "") {
				return mcp.NewToolResultError("exactly one of taskId or projectId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comments, err := client.ListComments(ctx, taskID, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list comments: %v", err)), nil
			}

			result, _ := json.MarshalIndent(comments, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	// Get comment tool
	getCommentTool := mcp.NewTool("todoist_get_comment",
		mcp.WithDescription("Get a specific comment"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("commentId",
			mcp.Required(),
			mcp.Description("The ID of the comment to retrieve"),
		),
	)

	s.AddTool(getCommentTool, common.InstrumentedToolHandlerWithService("todoist_get_comment", "rest", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			commentID, ok := args["commentId"].(string)
			if !ok || commentID == "" {
				return mcp.NewToolResultError("commentId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comment, err := client.GetComment(ctx, commentID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get comment: %v", err)), nil
			}

			result, _ := json.MarshalIndent(comment, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	if !readOnly {
		registerCommentWriteTools(s, sc)
	}

	return nil
}

func registerCommentWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create comment tool
	createCommentTool := mcp.NewTool("todoist_create_comment",
		mcp.WithDescription("Add a comment to a task or project. Exactly one of taskId or projectId must be given."),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("taskId",
			mcp.Description("Comment on this task"),
		),
		mcp.WithString("projectId",
			mcp.Description("Comment on this project"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The comment text, markdown supported"),
		),
	)

	s.AddTool(createCommentTool, common.InstrumentedToolHandlerWithService("todoist_create_comment", "rest", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			content, ok := args["content"].(string)
			if !ok || content == "" {
				return mcp.NewToolResultError("content is required"), nil
			}

			taskID, _ := args["taskId"].(string)
			projectID, _ := args["projectId"].(string)
			if (taskID == "") == (projectID == "") {
				return mcp.NewToolResultError("exactly one of taskId or projectId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comment, err := client.CreateComment(ctx, todoist.CommentInput{
				TaskID:    taskID,
				ProjectID: projectID,
				Content:   content,
			})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create comment: %v", err)), nil
			}

			result, _ := json.MarshalIndent(comment, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Comment created successfully:\n%s", string(result))), nil
		}))

	// Update comment tool
	updateCommentTool := mcp.NewTool("todoist_update_comment",
		mcp.WithDescription("Edit a comment"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("commentId",
			mcp.Required(),
			mcp.Description("The ID of the comment to edit"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The replacement comment text"),
		),
	)

	s.AddTool(updateCommentTool, common.InstrumentedToolHandlerWithService("todoist_update_comment", "rest", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			commentID, ok := args["commentId"].(string)
			if !ok || commentID == "" {
				return mcp.NewToolResultError("commentId is required"), nil
			}
			content, ok := args["content"].(string)
			if !ok || content == "" {
				return mcp.NewToolResultError("content is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comment, err := client.UpdateComment(ctx, commentID, content)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update comment: %v", err)), nil
			}

			result, _ := json.MarshalIndent(comment, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Comment updated successfully:\n%s", string(result))), nil
		}))

	// Delete comment tool
	deleteCommentTool := mcp.NewTool("todoist_delete_comment",
		mcp.WithDescription("Delete a comment"),
		mcp.WithString("account",
			mcp.Description(accountDescription),
		),
		mcp.WithString("commentId",
			mcp.Required(),
			mcp.Description("The ID of the comment to delete"),
		),
	)

	s.AddTool(deleteCommentTool, common.InstrumentedToolHandlerWithService("todoist_delete_comment", "rest", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(args)

			commentID, ok := args["commentId"].(string)
			if !ok || commentID == "" {
				return mcp.NewToolResultError("commentId is required"), nil
			}

			client, err := getClient(account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteComment(ctx, commentID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete comment: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Comment %s deleted successfully", commentID)), nil
		}))
}
