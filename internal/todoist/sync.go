package todoist

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

// Command is one Sync API command envelope. UUID correlates the command with
// its entry in the response status map; it must be unique per command and is
// never reused across requests. Commands are immutable once built.
type Command struct {
	Type   string         `json:"type"`
	UUID   string         `json:"uuid"`
	TempID string         `json:"temp_id,omitempty"`
	Args   map[string]any `json:"args"`
}

// CommandError describes a per-command failure reported by the sync endpoint.
type CommandError struct {
	Code     string
	Message  string
	HTTPCode int
}

// CommandStatus is the outcome of one command: either Ok, or Err describing
// the failure. Representing the entry as a tagged union keeps the branching
// in consumers exhaustive instead of passing loosely-typed response objects
// around.
type CommandStatus struct {
	Ok  bool
	Err *CommandError
}

// StatusMap maps command UUIDs to their individual outcomes. The endpoint
// executes commands independently, so one request can contain both successes
// and failures. An entry may be missing entirely; the contract does not
// promise completeness.
type StatusMap map[string]CommandStatus

// syncResponse is the subset of the sync endpoint response this client reads.
// temp_id_mapping and full_sync are intentionally not decoded.
type syncResponse struct {
	SyncStatus map[string]json.RawMessage `json:"sync_status"`
	Filters    []Filter                   `json:"filters"`
	Reminders  []Reminder                 `json:"reminders"`
}

// SubmitCommands sends a batch of commands in a single sync call and returns
// the per-command status map. It fails with a TransportError if the endpoint
// could not be reached and with an UpstreamError if the endpoint rejected
// the batch as a whole; per-command failures are reported in the map, never
// as errors.
func (c *Client) SubmitCommands(ctx context.Context, commands []Command) (StatusMap, error) {
	payload, err := json.Marshal(commands)
	if err != nil {
		return nil, NewValidationError("failed to encode sync commands: %v", err)
	}

	var out syncResponse
	resp, err := c.sync.R().SetContext(ctx).
		SetFormData(map[string]string{"commands": string(payload)}).
		SetResult(&out).
		Post("/sync")
	if err != nil {
		return nil, &TransportError{Op: "sync", Err: err}
	}
	if resp.IsError() {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	return decodeSyncStatus(out.SyncStatus), nil
}

// decodeSyncStatus converts raw sync_status entries into the tagged union.
// Each entry is either the string "ok" or an object describing the failure.
func decodeSyncStatus(raw map[string]json.RawMessage) StatusMap {
	statuses := make(StatusMap, len(raw))
	for id, entry := range raw {
		var marker string
		if err := json.Unmarshal(entry, &marker); err == nil {
			if marker == "ok" {
				statuses[id] = CommandStatus{Ok: true}
			} else {
				statuses[id] = CommandStatus{Err: &CommandError{Message: marker}}
			}
			continue
		}

		var wire struct {
			Error     string `json:"error"`
			ErrorCode int    `json:"error_code"`
			HTTPCode  int    `json:"http_code"`
		}
		if err := json.Unmarshal(entry, &wire); err != nil {
			statuses[id] = CommandStatus{Err: &CommandError{Message: string(entry)}}
			continue
		}
		statuses[id] = CommandStatus{Err: &CommandError{
			Code:     strconv.Itoa(wire.ErrorCode),
			Message:  wire.Error,
			HTTPCode: wire.HTTPCode,
		}}
	}
	return statuses
}

// submitOne submits a single command and folds its status back into an error.
// Used by the filter and reminder operations, which have no REST surface.
func (c *Client) submitOne(ctx context.Context, cmd Command) error {
	statuses, err := c.SubmitCommands(ctx, []Command{cmd})
	if err != nil {
		return err
	}

	status, ok := statuses[cmd.UUID]
	switch {
	case ok && status.Ok:
		return nil
	case ok && status.Err != nil:
		msg := status.Err.Message
		if msg == "" {
			msg = status.Err.Code
		}
		return NewValidationError("%s failed: %s", cmd.Type, msg)
	default:
		return NewValidationError("%s failed: no status returned", cmd.Type)
	}
}

// readResources fetches full snapshots of the given sync resource types.
func (c *Client) readResources(ctx context.Context, types []string) (*syncResponse, error) {
	encoded, err := json.Marshal(types)
	if err != nil {
		return nil, NewValidationError("failed to encode resource types: %v", err)
	}

	var out syncResponse
	resp, err := c.sync.R().SetContext(ctx).
		SetFormData(map[string]string{
			"sync_token":     "*",
			"resource_types": string(encoded),
		}).
		SetResult(&out).
		Post("/sync")
	if err != nil {
		return nil, &TransportError{Op: "read resources", Err: err}
	}
	if resp.IsError() {
		return nil, &UpstreamError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return &out, nil
}

// ListFilters returns all saved filters.
func (c *Client) ListFilters(ctx context.Context) ([]Filter, error) {
	out, err := c.readResources(ctx, []string{"filters"})
	if err != nil {
		return nil, err
	}

	filters := make([]Filter, 0, len(out.Filters))
	for _, f := range out.Filters {
		if !f.IsDeleted {
			filters = append(filters, f)
		}
	}
	return filters, nil
}

// CreateFilter creates a saved filter.
func (c *Client) CreateFilter(ctx context.Context, input FilterInput) error {
	if input.Name == "" || input.Query == "" {
		return NewValidationError("filter requires a name and a query")
	}

	args := map[string]any{"name": input.Name, "query": input.Query}
	if input.Color != "" {
		args["color"] = input.Color
	}
	if input.IsFavorite {
		args["is_favorite"] = true
	}
	return c.submitOne(ctx, Command{
		Type:   "filter_add",
		UUID:   uuid.NewString(),
		TempID: uuid.NewString(),
		Args:   args,
	})
}

// UpdateFilter updates a saved filter. Only the set fields of input are sent.
func (c *Client) UpdateFilter(ctx context.Context, filterID string, input FilterInput) error {
	args := map[string]any{"id": filterID}
	if input.Name != "" {
		args["name"] = input.Name
	}
	if input.Query != "" {
		args["query"] = input.Query
	}
	if input.Color != "" {
		args["color"] = input.Color
	}
	return c.submitOne(ctx, Command{Type: "filter_update", UUID: uuid.NewString(), Args: args})
}

// DeleteFilter deletes a saved filter.
func (c *Client) DeleteFilter(ctx context.Context, filterID string) error {
	return c.submitOne(ctx, Command{
		Type: "filter_delete",
		UUID: uuid.NewString(),
		Args: map[string]any{"id": filterID},
	})
}

// ListReminders returns all reminders.
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	out, err := c.readResources(ctx, []string{"reminders"})
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0, len(out.Reminders))
	for _, r := range out.Reminders {
		if !r.IsDeleted {
			reminders = append(reminders, r)
		}
	}
	return reminders, nil
}

// AddReminder adds a reminder to a task.
func (c *Client) AddReminder(ctx context.Context, input ReminderInput) error {
	if input.ItemID == "" {
		return NewValidationError("reminder requires a task id")
	}

	args := map[string]any{"item_id": input.ItemID}
	switch input.Type {
	case "relative":
		args["type"] = "relative"
		args["minute_offset"] = input.MinuteOffset
	case "absolute", "":
		args["type"] = "absolute"
		if input.DueString == "" {
			return NewValidationError("absolute reminder requires a due string")
		}
		args["due"] = map[string]any{"string": input.DueString}
	default:
		return NewValidationError("unsupported reminder type %q", input.Type)
	}
	return c.submitOne(ctx, Command{
		Type:   "reminder_add",
		UUID:   uuid.NewString(),
		TempID: uuid.NewString(),
		Args:   args,
	})
}

// DeleteReminder deletes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	return c.submitOne(ctx, Command{
		Type: "reminder_delete",
		UUID: uuid.NewString(),
		Args: map[string]any{"id": reminderID},
	})
}
