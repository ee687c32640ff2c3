// Package comment_tools provides MCP tools for Todoist comments on tasks and
// projects. Mutating tools are only registered when the server runs with
// write access enabled.
package comment_tools
