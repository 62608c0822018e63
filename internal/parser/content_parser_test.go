package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tend/internal/models"
)

func TestParseContent(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		content    string
		typ        models.TodoType
		parentID   uint
		wantErrors int
	}{
		{name: "plain", input: "Buy milk", content: "Buy milk", typ: models.TodoPlain},
		{name: "value ref", input: "Buy milk +value:3", content: "Buy milk", typ: models.TodoValue, parentID: 3},
		{name: "habit ref in the middle", input: "Stretch  +habit:12   daily", content: "Stretch daily", typ: models.TodoHabit, parentID: 12},
		{name: "input ref", input: "+input:4 Reply to Sam", content: "Reply to Sam", typ: models.TodoInput, parentID: 4},
		{name: "bad id", input: "Buy milk +value:abc", content: "Buy milk", typ: models.TodoPlain, wantErrors: 1},
		{name: "two refs", input: "x +value:1 +habit:2", content: "x", typ: models.TodoValue, parentID: 1, wantErrors: 1},
		{name: "only a ref", input: "+habit:2", content: "", typ: models.TodoHabit, parentID: 2, wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseContent(tt.input)
			assert.Equal(t, tt.content, got.Content)
			assert.Equal(t, tt.typ, got.Type)
			assert.Len(t, got.Errors, tt.wantErrors)
			if tt.parentID == 0 {
				assert.Nil(t, got.ParentID)
				return
			}
			require.NotNil(t, got.ParentID)
			assert.Equal(t, tt.parentID, *got.ParentID)
		})
	}
}

func TestParseID(t *testing.T) {
	for _, ok := range []string{"1", "42", "4294967295"} {
		_, err := ParseID(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "abc", "12abc", "-3", "+3", "0", "1.5", " 12", "12 ", "\t7", "4294967296"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}

	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}
