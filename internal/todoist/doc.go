// Package todoist provides a client for the Todoist REST and Sync APIs.
//
// The REST API (v2) serves single-resource CRUD for tasks, projects,
// sections and comments. The Sync API (v9) serves two purposes: resources
// without a REST surface (filters, reminders), and command batches — many
// mutations submitted in one call, each command carrying its own correlation
// UUID and reported on individually in the response status map.
//
// The client authenticates with a static bearer token resolved per account
// from the environment (TODOIST_API_TOKEN, TODOIST_API_TOKEN_<NAME>).
//
// Errors are classified into a small taxonomy: ValidationError for requests
// that never left the process, TransportError for network-level failures,
// UpstreamError for batch-level rejections by the sync endpoint, and
// APIError for non-2xx REST responses. Per-command failures inside an
// otherwise accepted batch are data (CommandStatus), not errors.
package todoist
