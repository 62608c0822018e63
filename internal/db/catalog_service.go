package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/tend/internal/models"
)

// CreateValueRequest holds the data needed to create a new value
type CreateValueRequest struct {
	Description string
	Color       string
}

// CreateHabitRequest holds the data needed to create a new habit
type CreateHabitRequest struct {
	Description string
	ValueID     *uint
}

// CreateEventRequest holds the data needed to create a new event
type CreateEventRequest struct {
	Description string
	TodoID      *uint
}

// CreateValue stores a new value owned by userID.
func (s *Store) CreateValue(ctx context.Context, userID uint, req CreateValueRequest) (*models.Value, error) {
	const op = "CreateValue"

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, validationErr(op, "description is required")
	}

	var value models.Value
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := createItem(tx, userID, models.ItemValue)
		if err != nil {
			return err
		}
		value = models.Value{ItemID: item.ID, Description: desc, Color: strings.TrimSpace(req.Color)}
		if err := tx.Omit(clause.Associations).Create(&value).Error; err != nil {
			return err
		}
		value.Item = &item
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return &value, nil
}

// ListValues returns the caller's values in creation order.
func (s *Store) ListValues(ctx context.Context, userID uint) ([]models.Value, error) {
	var values []models.Value
	err := s.db.WithContext(ctx).
		Scopes(ownedBy("life_values", userID)).
		Preload("Item").
		Order("life_values.item_id ASC").
		Find(&values).Error
	if err != nil {
		return nil, storeErr("ListValues", err)
	}
	return values, nil
}

// DeleteValue removes an owned value and its Item. Habits filed under it
// lose the link; todos keep their parent_id and simply stop enriching.
func (s *Store) DeleteValue(ctx context.Context, userID, id uint) error {
	const op = "DeleteValue"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwned(tx, &models.Value{}, "life_values", userID, id, "Value not found"); err != nil {
			return err
		}
		if err := tx.Model(&models.Habit{}).Where("value_id = ?", id).Update("value_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Value{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
	return storeErr(op, err)
}

// CreateHabit stores a new habit, optionally filed under an owned value.
func (s *Store) CreateHabit(ctx context.Context, userID uint, req CreateHabitRequest) (*models.Habit, error) {
	const op = "CreateHabit"

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, validationErr(op, "description is required")
	}

	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.ValueID != nil {
			msg := fmt.Sprintf("value %d not found", *req.ValueID)
			if err := requireOwned(tx, &models.Value{}, "life_values", userID, *req.ValueID, msg); err != nil {
				return asValidation(op, err)
			}
		}
		item, err := createItem(tx, userID, models.ItemHabit)
		if err != nil {
			return err
		}
		habit := models.Habit{ItemID: item.ID, Description: desc, ValueID: req.ValueID}
		if err := tx.Omit(clause.Associations).Create(&habit).Error; err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}

	var habit models.Habit
	err = s.db.WithContext(ctx).
		Preload("Item").
		Preload("Value").
		Take(&habit, id).Error
	if err != nil {
		return nil, storeErr(op, err)
	}
	return &habit, nil
}

// ListHabits returns the caller's habits with their values.
func (s *Store) ListHabits(ctx context.Context, userID uint) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.db.WithContext(ctx).
		Scopes(ownedBy("habits", userID)).
		Preload("Item").
		Preload("Value").
		Order("habits.item_id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, storeErr("ListHabits", err)
	}
	return habits, nil
}

// DeleteHabit removes an owned habit and its Item.
func (s *Store) DeleteHabit(ctx context.Context, userID, id uint) error {
	const op = "DeleteHabit"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwned(tx, &models.Habit{}, "habits", userID, id, "Habit not found"); err != nil {
			return err
		}
		if err := tx.Delete(&models.Habit{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
	return storeErr(op, err)
}

// CreateEvent stores a new event, optionally attached to an owned todo.
func (s *Store) CreateEvent(ctx context.Context, userID uint, req CreateEventRequest) (*models.Event, error) {
	const op = "CreateEvent"

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, validationErr(op, "description is required")
	}

	var event models.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.TodoID != nil {
			if _, err := findOwnedTodo(tx, userID, *req.TodoID); err != nil {
				return asValidation(op, err)
			}
		}
		item, err := createItem(tx, userID, models.ItemEvent)
		if err != nil {
			return err
		}
		event = models.Event{ItemID: item.ID, Description: desc, TodoID: req.TodoID}
		if err := tx.Omit(clause.Associations).Create(&event).Error; err != nil {
			return err
		}
		event.Item = &item
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return &event, nil
}

// ListEvents returns the caller's events in creation order.
func (s *Store) ListEvents(ctx context.Context, userID uint) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Scopes(ownedBy("events", userID)).
		Preload("Item").
		Order("events.item_id ASC").
		Find(&events).Error
	if err != nil {
		return nil, storeErr("ListEvents", err)
	}
	return events, nil
}

// requireOwned fails with a not-found error unless table has a row with
// item_id = id owned by userID.
func requireOwned(tx *gorm.DB, model any, table string, userID, id uint, msg string) error {
	var count int64
	err := tx.Model(model).
		Scopes(ownedBy(table, userID)).
		Where(table+".item_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return notFoundErr("requireOwned", msg)
	}
	return nil
}

// asValidation turns a missing referenced row into a bad request.
func asValidation(op string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindNotFound {
		return validationErr(op, e.Msg)
	}
	return err
}
