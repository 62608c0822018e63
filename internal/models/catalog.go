package models

// Value is a user-defined life value or category.
type Value struct {
	ItemID      uint   `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Description string `gorm:"not null" json:"description"`
	Color       string `json:"color"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName avoids the VALUES keyword.
func (Value) TableName() string {
	return "life_values"
}

// Habit is a recurring task template, optionally filed under a Value.
type Habit struct {
	ItemID      uint   `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Description string `gorm:"not null" json:"description"`
	ValueID     *uint  `gorm:"index" json:"value_id"`

	Item  *Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Value *Value `gorm:"foreignKey:ValueID;references:ItemID" json:"value"`
}

// Event is a descriptive record, optionally attached to a todo.
type Event struct {
	ItemID      uint   `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Description string `gorm:"not null" json:"description"`
	TodoID      *uint  `gorm:"index" json:"todo_id"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
