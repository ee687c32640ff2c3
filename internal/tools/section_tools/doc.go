// Package section_tools provides MCP tools for managing sections within
// Todoist projects. Mutating tools are only registered when the server runs
// with write access enabled.
package section_tools
