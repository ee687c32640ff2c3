package bulk

import (
	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

// missingStatusError is reported when the sync response omits a command's
// correlation id entirely. The remote contract does not promise a complete
// status map, and silently dropping the task would break the count
// invariant, so the task is counted as failed. Integrations against an
// endpoint with stronger completeness guarantees may prefer to retry here
// instead.
const missingStatusError = "no status returned for task"

// Reconcile walks the status map and converts each entry into a per-task
// outcome, in normalized task order. Counts are derived by summing the
// per-result flags rather than re-read from the status map, which keeps
// Successful + Failed == TotalTasks mechanically true.
func Reconcile(set NormalizedTaskSet, commands []todoist.Command, statuses todoist.StatusMap) Summary {
	// Task id -> correlation id; 1:1 by construction in BuildCommands.
	uuidByTask := make(map[string]string, len(commands))
	for _, cmd := range commands {
		if id, ok := cmd.Args["id"].(string); ok {
			uuidByTask[id] = cmd.UUID
		}
	}

	summary := Summary{
		TotalTasks: set.DeduplicatedCount,
		Results:    make([]OperationResult, 0, len(set.IDs)),
	}

	for _, taskID := range set.IDs {
		// The resource reference is derived from the task id alone so
		// callers can correlate failures too.
		result := OperationResult{
			TaskID:      taskID,
			ResourceURI: ResourceURI(taskID),
		}

		status, ok := statuses[uuidByTask[taskID]]
		switch {
		case ok && status.Ok:
			result.Success = true
		case ok && status.Err != nil:
			result.Error = status.Err.Message
			if result.Error == "" {
				result.Error = status.Err.Code
			}
		default:
			result.Error = missingStatusError
		}

		summary.Results = append(summary.Results, result)
		if result.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	return summary
}
