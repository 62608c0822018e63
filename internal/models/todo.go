package models

import (
	"fmt"
	"time"
)

// TodoType tells what a todo's parent_id points at.
type TodoType string

const (
	TodoPlain TodoType = "todo"
	TodoHabit TodoType = "habit"
	TodoValue TodoType = "value"
	TodoInput TodoType = "input"
)

// Valid reports whether t is one of the known todo types.
func (t TodoType) Valid() bool {
	switch t {
	case TodoPlain, TodoHabit, TodoValue, TodoInput:
		return true
	}
	return false
}

// ParentKind is the tag of a ParentRef.
type ParentKind int

const (
	ParentNone ParentKind = iota
	ParentHabit
	ParentValue
	ParentInput
)

// ParentRef is what a todo hangs off: nothing, a habit, a value or an input.
type ParentRef struct {
	Kind ParentKind
	ID   uint
}

// NoParent is the ref of a top-level todo.
func NoParent() ParentRef { return ParentRef{} }

func HabitRef(id uint) ParentRef { return ParentRef{Kind: ParentHabit, ID: id} }

func ValueRef(id uint) ParentRef { return ParentRef{Kind: ParentValue, ID: id} }

func InputRef(id uint) ParentRef { return ParentRef{Kind: ParentInput, ID: id} }

// IsNone reports whether the todo is top-level.
func (p ParentRef) IsNone() bool { return p.Kind == ParentNone }

// NewParentRef builds a ParentRef from the wire pair (type, parent_id).
// An empty type means a plain todo.
func NewParentRef(t TodoType, parentID *uint) (ParentRef, error) {
	if t == "" {
		t = TodoPlain
	}
	if !t.Valid() {
		return ParentRef{}, fmt.Errorf("unknown todo type %q", t)
	}
	if t == TodoPlain {
		if parentID != nil {
			return ParentRef{}, fmt.Errorf("a plain todo cannot have a parent_id")
		}
		return NoParent(), nil
	}
	if parentID == nil {
		return ParentRef{}, fmt.Errorf("parent_id is required for %s todos", t)
	}
	switch t {
	case TodoHabit:
		return HabitRef(*parentID), nil
	case TodoValue:
		return ValueRef(*parentID), nil
	default:
		return InputRef(*parentID), nil
	}
}

// Type returns the wire type for the ref.
func (p ParentRef) Type() TodoType {
	switch p.Kind {
	case ParentHabit:
		return TodoHabit
	case ParentValue:
		return TodoValue
	case ParentInput:
		return TodoInput
	}
	return TodoPlain
}

// Todo is a task, habit instance or value instance with a completion flag.
type Todo struct {
	ItemID    uint      `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Content   string    `gorm:"not null" json:"content"`
	Type      TodoType  `gorm:"not null;index" json:"type"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Completed bool      `gorm:"not null;index" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Item  *Item  `gorm:"foreignKey:ItemID" json:"item"`
	Event *Event `gorm:"foreignKey:TodoID;references:ItemID" json:"event"`

	// Filled from the parent ref, never persisted through gorm associations.
	Value *Value `gorm:"-" json:"value"`
	Habit *Habit `gorm:"-" json:"habit"`
}

// Parent decodes the stored type/parent_id pair.
func (t Todo) Parent() ParentRef {
	if t.ParentID == nil {
		return NoParent()
	}
	switch t.Type {
	case TodoHabit:
		return HabitRef(*t.ParentID)
	case TodoValue:
		return ValueRef(*t.ParentID)
	case TodoInput:
		return InputRef(*t.ParentID)
	}
	return NoParent()
}

// SetParent stores p as the type/parent_id pair.
func (t *Todo) SetParent(p ParentRef) {
	t.Type = p.Type()
	if p.IsNone() {
		t.ParentID = nil
		return
	}
	id := p.ID
	t.ParentID = &id
}
