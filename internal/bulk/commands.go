package bulk

import (
	"github.com/google/uuid"

	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

// Sync command types, one per bulk action.
const (
	cmdItemUpdate     = "item_update"
	cmdItemMove       = "item_move"
	cmdItemComplete   = "item_complete"
	cmdItemUncomplete = "item_uncomplete"
)

// BuildCommands maps one bulk action onto sync command envelopes, exactly one
// per task id in the normalized set. Every command gets a freshly generated
// UUID so its status can be correlated in the response; UUIDs are never
// reused across requests. Pure transformation, no I/O.
//
// It fails with a ValidationError when params lack a field the action
// structurally requires, or when the action tag is not recognized.
func BuildCommands(action Action, set NormalizedTaskSet, params Params) ([]todoist.Command, error) {
	cmdType, shape, err := argShaper(action, params)
	if err != nil {
		return nil, err
	}

	commands := make([]todoist.Command, 0, len(set.IDs))
	for _, taskID := range set.IDs {
		commands = append(commands, todoist.Command{
			Type: cmdType,
			UUID: uuid.NewString(),
			Args: shape(taskID),
		})
	}
	return commands, nil
}

// argShaper validates the params for an action and returns the command type
// plus a function shaping the per-task argument map. The task id always goes
// under "id", the field the sync protocol expects.
func argShaper(action Action, params Params) (string, func(taskID string) map[string]any, error) {
	switch action {
	case ActionUpdate:
		if !hasUpdateFields(params) {
			return "", nil, todoist.NewValidationError("update action requires at least one field to change")
		}
		return cmdItemUpdate, func(taskID string) map[string]any {
			args := map[string]any{"id": taskID}
			if params.Content != "" {
				args["content"] = params.Content
			}
			if params.Description != "" {
				args["description"] = params.Description
			}
			if params.DueString != "" {
				args["due"] = map[string]any{"string": params.DueString}
			}
			if params.Priority != 0 {
				args["priority"] = params.Priority
			}
			if len(params.Labels) > 0 {
				args["labels"] = params.Labels
			}
			return args
		}, nil

	case ActionMove:
		dest, value, err := moveDestination(params)
		if err != nil {
			return "", nil, err
		}
		return cmdItemMove, func(taskID string) map[string]any {
			return map[string]any{"id": taskID, dest: value}
		}, nil

	case ActionComplete:
		return cmdItemComplete, idOnlyArgs, nil

	case ActionUncomplete:
		return cmdItemUncomplete, idOnlyArgs, nil

	default:
		return "", nil, todoist.NewValidationError("unrecognized bulk action %q", string(action))
	}
}

func idOnlyArgs(taskID string) map[string]any {
	return map[string]any{"id": taskID}
}

func hasUpdateFields(params Params) bool {
	return params.Content != "" ||
		params.Description != "" ||
		params.DueString != "" ||
		params.Priority != 0 ||
		len(params.Labels) > 0
}

// moveDestination picks the destination container field for a move. Exactly
// one of project, section or parent must be set.
func moveDestination(params Params) (string, string, error) {
	var (
		dest  string
		value string
		count int
	)
	if params.ProjectID != "" {
		dest, value = "project_id", params.ProjectID
		count++
	}
	if params.SectionID != "" {
		dest, value = "section_id", params.SectionID
		count++
	}
	if params.ParentID != "" {
		dest, value = "parent_id", params.ParentID
		count++
	}

	switch count {
	case 0:
		return "", "", todoist.NewValidationError("move action requires a destination: project, section or parent")
	case 1:
		return dest, value, nil
	default:
		return "", "", todoist.NewValidationError("move action accepts exactly one destination")
	}
}
