// Package task_tools provides MCP tools for Todoist task management.
//
// Single-task tools cover the REST API surface: listing, retrieval,
// creation, update, completion, reopening and deletion. The
// todoist_bulk_tasks tool applies one action to many tasks through a
// single batched Sync API call and reports per-task outcomes, tolerating
// partial failure.
//
// All tools accept an optional "account" argument selecting which
// TODOIST_API_TOKEN_<NAME> environment variable supplies the API token.
// Mutating tools are only registered when the server runs with write
// access enabled.
package task_tools
