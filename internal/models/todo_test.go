package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestNewParentRef(t *testing.T) {
	tests := []struct {
		name     string
		typ      TodoType
		parentID *uint
		want     ParentRef
		wantErr  bool
	}{
		{name: "empty type is plain", typ: "", want: NoParent()},
		{name: "plain todo", typ: TodoPlain, want: NoParent()},
		{name: "plain todo with parent", typ: TodoPlain, parentID: uintPtr(3), wantErr: true},
		{name: "habit", typ: TodoHabit, parentID: uintPtr(7), want: HabitRef(7)},
		{name: "value", typ: TodoValue, parentID: uintPtr(3), want: ValueRef(3)},
		{name: "input", typ: TodoInput, parentID: uintPtr(9), want: InputRef(9)},
		{name: "habit without parent", typ: TodoHabit, wantErr: true},
		{name: "unknown type", typ: "chore", parentID: uintPtr(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParentRef(tt.typ, tt.parentID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTodoParentRoundTrip(t *testing.T) {
	refs := []ParentRef{NoParent(), HabitRef(2), ValueRef(3), InputRef(4)}

	for _, ref := range refs {
		var todo Todo
		todo.SetParent(ref)
		assert.Equal(t, ref, todo.Parent())
		assert.Equal(t, ref.Type(), todo.Type)
	}

	var plain Todo
	plain.SetParent(NoParent())
	assert.Nil(t, plain.ParentID)
	assert.Equal(t, TodoPlain, plain.Type)
}

func TestTodoParentIgnoresDanglingID(t *testing.T) {
	todo := Todo{Type: TodoPlain, ParentID: uintPtr(5)}
	assert.True(t, todo.Parent().IsNone())
}
