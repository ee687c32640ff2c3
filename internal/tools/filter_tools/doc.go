// Package filter_tools provides MCP tools for Todoist saved filters. Filters
// have no REST endpoint, so every tool here goes through the Sync API.
// Mutating tools are only registered when the server runs with write access
// enabled.
package filter_tools
