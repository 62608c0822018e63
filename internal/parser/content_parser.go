package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/tend/internal/models"
)

// ParsedTodo represents a todo parsed from a one-line description
type ParsedTodo struct {
	Content  string
	Type     models.TodoType
	ParentID *uint
	Errors   []string
}

var parentRegex = regexp.MustCompile(`\+(habit|value|input):(\S+)`)

// ParseContent extracts a parent reference from a todo description.
// Syntax: "Buy milk +value:3", "Stretch +habit:12", "Reply +input:4"
// Without a reference the todo is a plain, top-level todo.
func ParseContent(input string) ParsedTodo {
	result := ParsedTodo{
		Type:   models.TodoPlain,
		Errors: []string{},
	}

	matches := parentRegex.FindAllStringSubmatch(input, -1)
	if len(matches) > 1 {
		result.Errors = append(result.Errors, "Only one +habit/+value/+input reference is allowed")
	}
	if len(matches) > 0 {
		kind, raw := matches[0][1], matches[0][2]
		id, err := ParseID(raw)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid "+kind+" ID '"+raw+"'")
		} else {
			result.Type = models.TodoType(kind)
			result.ParentID = &id
		}
		// Remove from content
		input = parentRegex.ReplaceAllString(input, "")
	}

	// Clean up the content (remove extra spaces)
	result.Content = strings.Join(strings.Fields(input), " ")

	if result.Content == "" {
		result.Errors = append(result.Errors, "Todo description is empty")
	}

	return result
}

// ParseID parses a positive base-10 record id. Surrounding whitespace and
// leading digits followed by anything else are rejected.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return uint(n), nil
}
