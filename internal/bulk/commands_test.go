package bulk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

func TestBuildCommandsOnePerTaskWithDistinctUUIDs(t *testing.T) {
	set := Normalize([]string{"1", "2", "3", "4"})

	commands, err := BuildCommands(ActionComplete, set, Params{})
	require.NoError(t, err)
	require.Len(t, commands, 4)

	seen := make(map[string]bool)
	for i, cmd := range commands {
		assert.Equal(t, "item_complete", cmd.Type)
		assert.Equal(t, set.IDs[i], cmd.Args["id"])
		assert.NotEmpty(t, cmd.UUID)
		assert.False(t, seen[cmd.UUID], "correlation id %s reused", cmd.UUID)
		seen[cmd.UUID] = true
	}
}

func TestBuildCommandsUpdateCopiesSetFieldsOnly(t *testing.T) {
	set := Normalize([]string{"1"})
	params := Params{
		Content:  "new content",
		Priority: 3,
	}

	commands, err := BuildCommands(ActionUpdate, set, params)
	require.NoError(t, err)
	require.Len(t, commands, 1)

	args := commands[0].Args
	assert.Equal(t, "item_update", commands[0].Type)
	assert.Equal(t, "1", args["id"])
	assert.Equal(t, "new content", args["content"])
	assert.Equal(t, 3, args["priority"])

	// Unset fields must be omitted, not sent as zero values.
	assert.NotContains(t, args, "description")
	assert.NotContains(t, args, "due")
	assert.NotContains(t, args, "labels")
}

func TestBuildCommandsUpdateDueString(t *testing.T) {
	set := Normalize([]string{"1"})

	commands, err := BuildCommands(ActionUpdate, set, Params{DueString: "tomorrow"})
	require.NoError(t, err)

	due, ok := commands[0].Args["due"].(map[string]any)
	require.True(t, ok, "due must be a nested object")
	assert.Equal(t, "tomorrow", due["string"])
}

func TestBuildCommandsUpdateWithoutFields(t *testing.T) {
	set := Normalize([]string{"1"})

	_, err := BuildCommands(ActionUpdate, set, Params{})

	var verr *todoist.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
}

func TestBuildCommandsMoveDestinations(t *testing.T) {
	set := Normalize([]string{"1"})

	tests := []struct {
		name      string
		params    Params
		wantField string
		wantValue string
		wantErr   bool
	}{
		{name: "project", params: Params{ProjectID: "p1"}, wantField: "project_id", wantValue: "p1"},
		{name: "section", params: Params{SectionID: "s1"}, wantField: "section_id", wantValue: "s1"},
		{name: "parent", params: Params{ParentID: "t9"}, wantField: "parent_id", wantValue: "t9"},
		{name: "no destination", params: Params{}, wantErr: true},
		{name: "two destinations", params: Params{ProjectID: "p1", SectionID: "s1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, err := BuildCommands(ActionMove, set, tt.params)
			if tt.wantErr {
				var verr *todoist.ValidationError
				require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, commands, 1)
			assert.Equal(t, "item_move", commands[0].Type)
			assert.Equal(t, tt.wantValue, commands[0].Args[tt.wantField])
		})
	}
}

func TestBuildCommandsCompleteCarriesOnlyTaskID(t *testing.T) {
	set := Normalize([]string{"1"})

	for _, action := range []Action{ActionComplete, ActionUncomplete} {
		commands, err := BuildCommands(action, set, Params{Content: "ignored"})
		require.NoError(t, err)
		require.Len(t, commands, 1)
		assert.Len(t, commands[0].Args, 1)
		assert.Equal(t, "1", commands[0].Args["id"])
	}
}

func TestBuildCommandsUnknownAction(t *testing.T) {
	set := Normalize([]string{"1"})

	_, err := BuildCommands(Action("archive"), set, Params{})

	var verr *todoist.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
}
