package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestAddRequest(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		valueID  uint
		habitID  uint
		content  string
		typ      models.TodoType
		parentID uint
		problems int
	}{
		{name: "plain", text: "Buy milk", content: "Buy milk", typ: models.TodoPlain},
		{name: "inline value", text: "Buy milk +value:3", content: "Buy milk", typ: models.TodoValue, parentID: 3},
		{name: "value flag", text: "Buy milk", valueID: 4, content: "Buy milk", typ: models.TodoValue, parentID: 4},
		{name: "flag beats inline", text: "Stretch +habit:2", valueID: 9, content: "Stretch", typ: models.TodoValue, parentID: 9},
		{name: "habit flag beats value flag", text: "Stretch", valueID: 9, habitID: 5, content: "Stretch", typ: models.TodoHabit, parentID: 5},
		{name: "bad inline id", text: "Oops +value:abc", content: "Oops", typ: models.TodoPlain, problems: 1},
		{name: "empty content", text: "+value:1", typ: models.TodoValue, parentID: 1, problems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, problems := addRequest(tt.text, tt.valueID, tt.habitID)
			assert.Len(t, problems, tt.problems)
			assert.Equal(t, tt.content, req.Content)
			assert.Equal(t, tt.typ, req.Type)
			if tt.parentID == 0 {
				assert.Nil(t, req.ParentID)
				return
			}
			require.NotNil(t, req.ParentID)
			assert.Equal(t, tt.parentID, *req.ParentID)
		})
	}
}

func TestParentLabel(t *testing.T) {
	tests := []struct {
		name string
		todo models.Todo
		want string
	}{
		{name: "plain", todo: models.Todo{Type: models.TodoPlain}, want: ""},
		{
			name: "enriched value",
			todo: models.Todo{Type: models.TodoValue, ParentID: uintPtr(3), Value: &models.Value{ItemID: 3, Description: "Health"}},
			want: "value: Health",
		},
		{name: "missing value", todo: models.Todo{Type: models.TodoValue, ParentID: uintPtr(3)}, want: "value #3"},
		{
			name: "enriched habit",
			todo: models.Todo{Type: models.TodoHabit, ParentID: uintPtr(7), Habit: &models.Habit{ItemID: 7, Description: "Stretch"}},
			want: "habit: Stretch",
		},
		{name: "missing habit", todo: models.Todo{Type: models.TodoHabit, ParentID: uintPtr(7)}, want: "habit #7"},
		{name: "input", todo: models.Todo{Type: models.TodoInput, ParentID: uintPtr(4)}, want: "input #4"},
		{name: "plain with stray parent id", todo: models.Todo{Type: models.TodoPlain, ParentID: uintPtr(5)}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parentLabel(tt.todo))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "short", n: 10, want: "short"},
		{in: "exactly10!", n: 10, want: "exactly10!"},
		{in: "this is far too long", n: 10, want: "this is..."},
		{in: "ééééééééééé", n: 10, want: "ééééééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), tt.n)
		})
	}
}
