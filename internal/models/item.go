package models

import "time"

// ItemType names the specialization that hangs off an Item row.
type ItemType string

const (
	ItemTodo  ItemType = "todo"
	ItemValue ItemType = "value"
	ItemHabit ItemType = "habit"
	ItemEvent ItemType = "event"
)

// Item is the base row every todo, value, habit and event attaches to
// through a shared primary key. It carries the owner.
type Item struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      ItemType  `gorm:"not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
