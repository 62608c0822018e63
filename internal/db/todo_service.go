package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/tend/internal/models"
)

const todoNotFound = "Todo not found"

// CreateTodoRequest holds the data needed to create a new todo
type CreateTodoRequest struct {
	Content  string
	Type     models.TodoType
	ParentID *uint
}

// ownedTodos is the base query for every todo listing: the caller's rows
// only, with their Item, in creation order.
func ownedTodos(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Model(&models.Todo{}).
		Scopes(ownedBy("todos", userID)).
		Preload("Item").
		Order("todos.item_id ASC")
}

// ListCompleted returns every completed todo owned by userID.
func (s *Store) ListCompleted(ctx context.Context, userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	err := ownedTodos(s.db.WithContext(ctx), userID).
		Where("todos.completed = ?", true).
		Find(&todos).Error
	if err != nil {
		return nil, storeErr("ListCompleted", err)
	}
	return todos, nil
}

// ListCompletedTodayNoEvent returns top-level todos (no parent) completed
// since local midnight.
func (s *Store) ListCompletedTodayNoEvent(ctx context.Context, userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	err := ownedTodos(s.db.WithContext(ctx), userID).
		Where("todos.completed = ?", true).
		Where("todos.updated_at >= ?", s.startOfToday().UTC()).
		Where("todos.parent_id IS NULL").
		Find(&todos).Error
	if err != nil {
		return nil, storeErr("ListCompletedTodayNoEvent", err)
	}
	return todos, nil
}

// ListIncomplete returns open todos with their Value or Habit (and the
// habit's Value) attached.
func (s *Store) ListIncomplete(ctx context.Context, userID uint) ([]models.Todo, error) {
	const op = "ListIncomplete"
	tx := s.db.WithContext(ctx)

	var todos []models.Todo
	err := ownedTodos(tx, userID).
		Where("todos.completed = ?", false).
		Find(&todos).Error
	if err != nil {
		return nil, storeErr(op, err)
	}
	if err := attachParents(tx, userID, todos); err != nil {
		return nil, storeErr(op, err)
	}
	return todos, nil
}

// ListIncompleteByHabit returns open todos generated from habitID.
func (s *Store) ListIncompleteByHabit(ctx context.Context, userID, habitID uint) ([]models.Todo, error) {
	return s.listIncompleteByParent(ctx, "ListIncompleteByHabit", userID, models.HabitRef(habitID))
}

// ListIncompleteByValue returns open todos filed under valueID.
func (s *Store) ListIncompleteByValue(ctx context.Context, userID, valueID uint) ([]models.Todo, error) {
	return s.listIncompleteByParent(ctx, "ListIncompleteByValue", userID, models.ValueRef(valueID))
}

func (s *Store) listIncompleteByParent(ctx context.Context, op string, userID uint, parent models.ParentRef) ([]models.Todo, error) {
	var todos []models.Todo
	err := ownedTodos(s.db.WithContext(ctx), userID).
		Where("todos.completed = ?", false).
		Where("todos.type = ? AND todos.parent_id = ?", string(parent.Type()), parent.ID).
		Find(&todos).Error
	if err != nil {
		return nil, storeErr(op, err)
	}
	return todos, nil
}

// GetTodo returns one owned todo with its Item, Event and parent attached.
func (s *Store) GetTodo(ctx context.Context, userID, id uint) (*models.Todo, error) {
	const op = "GetTodo"
	tx := s.db.WithContext(ctx)

	todo, err := findOwnedTodo(tx.Preload("Event"), userID, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	todos := []models.Todo{*todo}
	if err := attachParents(tx, userID, todos); err != nil {
		return nil, storeErr(op, err)
	}
	return &todos[0], nil
}

// CreateTodo allocates an Item and its Todo in one transaction and returns
// the enriched todo.
func (s *Store) CreateTodo(ctx context.Context, userID uint, req CreateTodoRequest) (*models.Todo, error) {
	const op = "CreateTodo"

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationErr(op, "content is required")
	}
	parent, err := models.NewParentRef(req.Type, req.ParentID)
	if err != nil {
		return nil, validationErr(op, err.Error())
	}

	var id uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := createItem(tx, userID, models.ItemTodo)
		if err != nil {
			return err
		}
		todo := models.Todo{
			ItemID:    item.ID,
			Content:   content,
			Completed: false,
		}
		todo.SetParent(parent)
		if err := tx.Omit(clause.Associations).Create(&todo).Error; err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	if err != nil {
		return nil, storeErr(op, err)
	}

	return s.GetTodo(ctx, userID, id)
}

// SetCompleted flips the completion flag of an owned todo. Setting the
// current value again is a no-op that still succeeds.
func (s *Store) SetCompleted(ctx context.Context, userID, id uint, completed bool) (*models.Todo, error) {
	const op = "SetCompleted"
	tx := s.db.WithContext(ctx)

	todo, err := findOwnedTodo(tx, userID, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	if err := tx.Model(&models.Todo{}).Where("item_id = ?", todo.ItemID).Update("completed", completed).Error; err != nil {
		return nil, storeErr(op, err)
	}

	todo, err = findOwnedTodo(tx, userID, id)
	if err != nil {
		return nil, storeErr(op, err)
	}
	return todo, nil
}

// DeleteTodo removes an owned todo and then its Item in one transaction.
// Events that pointed at the todo are detached.
func (s *Store) DeleteTodo(ctx context.Context, userID, id uint) error {
	const op = "DeleteTodo"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedTodo(tx, userID, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Event{}).Where("todo_id = ?", id).Update("todo_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Todo{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
	return storeErr(op, err)
}

// findOwnedTodo loads a todo by id, joined to an Item owned by userID.
func findOwnedTodo(tx *gorm.DB, userID, id uint) (*models.Todo, error) {
	var todo models.Todo
	err := ownedTodos(tx, userID).
		Where("todos.item_id = ?", id).
		Take(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundErr("findOwnedTodo", todoNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// attachParents fills Value on value todos and Habit (with its Value) on
// habit todos. Parents that are missing or owned by someone else stay nil.
func attachParents(tx *gorm.DB, userID uint, todos []models.Todo) error {
	var valueIDs, habitIDs []uint
	for _, todo := range todos {
		switch p := todo.Parent(); p.Kind {
		case models.ParentValue:
			valueIDs = append(valueIDs, p.ID)
		case models.ParentHabit:
			habitIDs = append(habitIDs, p.ID)
		}
	}

	values := make(map[uint]*models.Value, len(valueIDs))
	if len(valueIDs) > 0 {
		var rows []models.Value
		err := tx.Scopes(ownedBy("life_values", userID)).
			Where("life_values.item_id IN ?", valueIDs).
			Find(&rows).Error
		if err != nil {
			return err
		}
		for i := range rows {
			values[rows[i].ItemID] = &rows[i]
		}
	}

	habits := make(map[uint]*models.Habit, len(habitIDs))
	if len(habitIDs) > 0 {
		var rows []models.Habit
		err := tx.Scopes(ownedBy("habits", userID)).
			Preload("Value").
			Where("habits.item_id IN ?", habitIDs).
			Find(&rows).Error
		if err != nil {
			return err
		}
		for i := range rows {
			habits[rows[i].ItemID] = &rows[i]
		}
	}

	for i := range todos {
		switch p := todos[i].Parent(); p.Kind {
		case models.ParentValue:
			todos[i].Value = values[p.ID]
		case models.ParentHabit:
			todos[i].Habit = habits[p.ID]
		}
	}
	return nil
}
