// Package project_tools provides MCP tools for Todoist project management:
// listing, retrieval, creation, update and deletion. Mutating tools are only
// registered when the server runs with write access enabled.
package project_tools
