package bulk

import (
	"context"

	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

// Action identifies the mutation applied to every task in a bulk request.
type Action string

const (
	ActionUpdate     Action = "update"
	ActionMove       Action = "move"
	ActionComplete   Action = "complete"
	ActionUncomplete Action = "uncomplete"
)

// Params carries the action-specific arguments of a bulk request. For update,
// the set fields are copied verbatim onto every task; unset fields are
// omitted. For move, exactly one destination must be set. Complete and
// uncomplete ignore all fields.
type Params struct {
	Content     string
	Description string
	DueString   string
	Priority    int
	Labels      []string

	// Move destinations, mutually exclusive.
	ProjectID string
	SectionID string
	ParentID  string
}

// Request is one caller-issued batch mutation: a single action applied to
// many task ids. Consumed once and discarded.
type Request struct {
	Action  Action
	TaskIDs []string
	Params  Params
}

// NormalizedTaskSet is a duplicate-free task id sequence preserving the order
// of first occurrence, plus the counts needed for response metadata.
// Invariant: DeduplicatedCount == len(IDs) <= OriginalCount.
type NormalizedTaskSet struct {
	IDs               []string
	OriginalCount     int
	DeduplicatedCount int
}

// Submitter issues one synchronization call for a whole batch of commands.
// Implemented by todoist.Client; faked in tests. The returned map is keyed by
// command UUID and carries no ordering guarantee.
type Submitter interface {
	SubmitCommands(ctx context.Context, commands []todoist.Command) (todoist.StatusMap, error)
}

// OperationResult is the outcome for one task in the normalized set.
// Invariant: Error is non-empty exactly when Success is false.
type OperationResult struct {
	TaskID      string `json:"task_id"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	ResourceURI string `json:"resource_uri"`
}

// Summary aggregates the per-task outcomes of one bulk request.
// Invariant: Successful + Failed == TotalTasks, and Results is ordered like
// the normalized task set.
type Summary struct {
	TotalTasks int               `json:"total_tasks"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Results    []OperationResult `json:"results"`
}

// Metadata describes how a bulk request was executed.
type Metadata struct {
	ExecutionTimeMS      int64 `json:"execution_time_ms"`
	DeduplicationApplied bool  `json:"deduplication_applied"`
	OriginalCount        int   `json:"original_count"`
	DeduplicatedCount    int   `json:"deduplicated_count"`
}

// Response is the top-level bulk envelope. Success stays true under partial
// failure; it is false only when the pipeline as a whole failed, in which
// case Data is absent and Error describes the failure.
type Response struct {
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
	Data     *Summary  `json:"data,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// ResourceURI returns the stable reference for a task id, usable by callers
// to address the task in subsequent calls.
func ResourceURI(taskID string) string {
	return "todoist://task/" + taskID
}
