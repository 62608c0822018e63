package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/db/dbtest"
	"github.com/balkashynov/tend/internal/models"
)

var noon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func newStore(t *testing.T) (*db.Store, *dbtest.Clock) {
	clock := dbtest.NewClock(noon)
	return dbtest.NewStore(t, clock), clock
}

func mustCreateTodo(t *testing.T, s *db.Store, userID uint, content string) *models.Todo {
	t.Helper()
	todo, err := s.CreateTodo(context.Background(), userID, db.CreateTodoRequest{Content: content})
	require.NoError(t, err)
	return todo
}

func itemIDs(todos []models.Todo) []uint {
	ids := make([]uint, 0, len(todos))
	for _, todo := range todos {
		ids = append(ids, todo.ItemID)
	}
	return ids
}

func TestCreateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("value todo for user 42", func(t *testing.T) {
		s, _ := newStore(t)

		todo, err := s.CreateTodo(ctx, 42, db.CreateTodoRequest{
			Content:  "Buy milk",
			Type:     models.TodoValue,
			ParentID: uintPtr(3),
		})
		require.NoError(t, err)

		assert.Equal(t, "Buy milk", todo.Content)
		assert.Equal(t, models.TodoValue, todo.Type)
		require.NotNil(t, todo.ParentID)
		assert.Equal(t, uint(3), *todo.ParentID)
		assert.False(t, todo.Completed)

		require.NotNil(t, todo.Item)
		assert.Equal(t, uint(42), todo.Item.UserID)
		assert.Equal(t, models.ItemTodo, todo.Item.Type)
		assert.WithinDuration(t, noon, todo.Item.CreatedAt, time.Second)

		// Value 3 does not exist, so enrichment is empty rather than an error.
		assert.Nil(t, todo.Value)
		assert.Nil(t, todo.Event)

		var item models.Item
		require.NoError(t, s.Gorm().First(&item, todo.ItemID).Error)
		assert.Equal(t, uint(42), item.UserID)
	})

	t.Run("enriches with owned value", func(t *testing.T) {
		s, _ := newStore(t)

		value, err := s.CreateValue(ctx, 1, db.CreateValueRequest{Description: "Health", Color: "#22C55E"})
		require.NoError(t, err)

		todo, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{
			Content:  "Run 5k",
			Type:     models.TodoValue,
			ParentID: &value.ItemID,
		})
		require.NoError(t, err)
		require.NotNil(t, todo.Value)
		assert.Equal(t, "Health", todo.Value.Description)
		assert.Equal(t, "#22C55E", todo.Value.Color)
	})

	t.Run("does not enrich with another user's value", func(t *testing.T) {
		s, _ := newStore(t)

		value, err := s.CreateValue(ctx, 2, db.CreateValueRequest{Description: "Secret"})
		require.NoError(t, err)

		todo, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{
			Content:  "Peek",
			Type:     models.TodoValue,
			ParentID: &value.ItemID,
		})
		require.NoError(t, err)
		assert.Nil(t, todo.Value)
	})

	t.Run("validation", func(t *testing.T) {
		s, _ := newStore(t)

		cases := []db.CreateTodoRequest{
			{Content: "   "},
			{Content: "x", Type: "chore"},
			{Content: "x", Type: models.TodoHabit},
			{Content: "x", Type: models.TodoPlain, ParentID: uintPtr(1)},
		}
		for _, req := range cases {
			_, err := s.CreateTodo(ctx, 1, req)
			assert.ErrorIs(t, err, db.ErrValidation)
			assert.Equal(t, db.KindValidation, db.KindOf(err))
		}

		var count int64
		require.NoError(t, s.Gorm().Model(&models.Item{}).Count(&count).Error)
		assert.Zero(t, count, "failed creates must not leave items behind")
	})
}

func TestListIncompleteIncludesNewTodo(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	todo := mustCreateTodo(t, s, 1, "Write report")

	todos, err := s.ListIncomplete(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.ItemID, todos[0].ItemID)
	assert.False(t, todos[0].Completed)
	require.NotNil(t, todos[0].Item)
}

func TestListIncompleteEnrichesHabitWithValue(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	value, err := s.CreateValue(ctx, 1, db.CreateValueRequest{Description: "Fitness", Color: "#7C3AED"})
	require.NoError(t, err)
	habit, err := s.CreateHabit(ctx, 1, db.CreateHabitRequest{Description: "Stretch", ValueID: &value.ItemID})
	require.NoError(t, err)

	_, err = s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Morning stretch", Type: models.TodoHabit, ParentID: &habit.ItemID})
	require.NoError(t, err)
	_, err = s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Gym", Type: models.TodoValue, ParentID: &value.ItemID})
	require.NoError(t, err)

	todos, err := s.ListIncomplete(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 2)

	require.NotNil(t, todos[0].Habit)
	assert.Nil(t, todos[0].Value)
	assert.Equal(t, "Stretch", todos[0].Habit.Description)
	require.NotNil(t, todos[0].Habit.Value)
	assert.Equal(t, "Fitness", todos[0].Habit.Value.Description)

	require.NotNil(t, todos[1].Value)
	assert.Nil(t, todos[1].Habit)
	assert.Equal(t, "#7C3AED", todos[1].Value.Color)
}

func TestOwnershipIsolation(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	open := mustCreateTodo(t, s, 1, "A's open todo")
	done := mustCreateTodo(t, s, 1, "A's done todo")
	_, err := s.SetCompleted(ctx, 1, done.ItemID, true)
	require.NoError(t, err)

	incomplete, err := s.ListIncomplete(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, incomplete)

	completed, err := s.ListCompleted(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, completed)

	today, err := s.ListCompletedTodayNoEvent(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, today)

	_, err = s.SetCompleted(ctx, 2, open.ItemID, true)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.EqualError(t, err, "Todo not found")

	err = s.DeleteTodo(ctx, 2, open.ItemID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	still, err := s.ListIncomplete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{open.ItemID}, itemIDs(still))
}

func TestSetCompletedRoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	todo := mustCreateTodo(t, s, 1, "Toggle me")

	updated, err := s.SetCompleted(ctx, 1, todo.ItemID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	again, err := s.SetCompleted(ctx, 1, todo.ItemID, true)
	require.NoError(t, err, "setting the same value twice succeeds")
	assert.True(t, again.Completed)

	completed, err := s.ListCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{todo.ItemID}, itemIDs(completed))

	reverted, err := s.SetCompleted(ctx, 1, todo.ItemID, false)
	require.NoError(t, err)
	assert.False(t, reverted.Completed)

	incomplete, err := s.ListIncomplete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{todo.ItemID}, itemIDs(incomplete))
}

func TestSetCompletedMissing(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.SetCompleted(context.Background(), 1, 999, true)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDeleteTodo(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	keep := mustCreateTodo(t, s, 1, "Keep")
	gone := mustCreateTodo(t, s, 1, "Gone")
	_, err := s.SetCompleted(ctx, 1, gone.ItemID, true)
	require.NoError(t, err)

	event, err := s.CreateEvent(ctx, 1, db.CreateEventRequest{Description: "Did it", TodoID: &gone.ItemID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTodo(ctx, 1, gone.ItemID))

	var items int64
	require.NoError(t, s.Gorm().Model(&models.Item{}).Where("id = ?", gone.ItemID).Count(&items).Error)
	assert.Zero(t, items, "item row is removed with the todo")

	completed, err := s.ListCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, completed)

	today, err := s.ListCompletedTodayNoEvent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, today)

	incomplete, err := s.ListIncomplete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{keep.ItemID}, itemIDs(incomplete))

	_, err = s.GetTodo(ctx, 1, gone.ItemID)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTodo(ctx, 1, gone.ItemID), db.ErrNotFound)

	events, err := s.ListEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ItemID, events[0].ItemID)
	assert.Nil(t, events[0].TodoID, "events are detached from deleted todos")
}

func TestListCompletedTodayNoEvent(t *testing.T) {
	s, clock := newStore(t)
	ctx := context.Background()

	value, err := s.CreateValue(ctx, 1, db.CreateValueRequest{Description: "Work"})
	require.NoError(t, err)

	yesterday := mustCreateTodo(t, s, 1, "Done yesterday")
	clock.Set(noon.Add(-24 * time.Hour))
	_, err = s.SetCompleted(ctx, 1, yesterday.ItemID, true)
	require.NoError(t, err)

	clock.Set(noon)
	today := mustCreateTodo(t, s, 1, "Done today")
	_, err = s.SetCompleted(ctx, 1, today.ItemID, true)
	require.NoError(t, err)

	child, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Has parent", Type: models.TodoValue, ParentID: &value.ItemID})
	require.NoError(t, err)
	_, err = s.SetCompleted(ctx, 1, child.ItemID, true)
	require.NoError(t, err)

	mustCreateTodo(t, s, 1, "Still open")

	todos, err := s.ListCompletedTodayNoEvent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{today.ItemID}, itemIDs(todos))

	all, err := s.ListCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{yesterday.ItemID, today.ItemID, child.ItemID}, itemIDs(all))
}

func TestListIncompleteByParent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	habit, err := s.CreateHabit(ctx, 1, db.CreateHabitRequest{Description: "Read"})
	require.NoError(t, err)
	value, err := s.CreateValue(ctx, 1, db.CreateValueRequest{Description: "Learning"})
	require.NoError(t, err)

	byHabit, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Chapter 1", Type: models.TodoHabit, ParentID: &habit.ItemID})
	require.NoError(t, err)
	doneHabit, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Chapter 0", Type: models.TodoHabit, ParentID: &habit.ItemID})
	require.NoError(t, err)
	_, err = s.SetCompleted(ctx, 1, doneHabit.ItemID, true)
	require.NoError(t, err)
	byValue, err := s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Course", Type: models.TodoValue, ParentID: &value.ItemID})
	require.NoError(t, err)

	// Same numeric parent id under the other tag must not leak across.
	_, err = s.CreateTodo(ctx, 1, db.CreateTodoRequest{Content: "Wrong tag", Type: models.TodoValue, ParentID: &habit.ItemID})
	require.NoError(t, err)

	habitTodos, err := s.ListIncompleteByHabit(ctx, 1, habit.ItemID)
	require.NoError(t, err)
	assert.Equal(t, []uint{byHabit.ItemID}, itemIDs(habitTodos))

	valueTodos, err := s.ListIncompleteByValue(ctx, 1, value.ItemID)
	require.NoError(t, err)
	assert.Equal(t, []uint{byValue.ItemID}, itemIDs(valueTodos))

	other, err := s.ListIncompleteByHabit(ctx, 2, habit.ItemID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func countRows(t *testing.T, s *db.Store, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.Gorm().Model(model).Count(&n).Error)
	return n
}

func TestCreateTodoRollsBack(t *testing.T) {
	s, _ := newStore(t)

	// Without a todos table the second insert fails after the item insert.
	require.NoError(t, s.Gorm().Migrator().DropTable(&models.Todo{}))

	_, err := s.CreateTodo(context.Background(), 1, db.CreateTodoRequest{Content: "Buy milk"})
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrStore)
	assert.Equal(t, db.KindStore, db.KindOf(err))

	assert.Zero(t, countRows(t, s, &models.Item{}), "item insert is rolled back")
}

func TestDeleteTodoRollsBack(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	todo := mustCreateTodo(t, s, 1, "Buy milk")

	// Fail the item delete, which runs after the todo delete.
	err := s.Gorm().Callback().Delete().Before("gorm:delete").Register("test:fail_item_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "items" {
			_ = tx.AddError(errors.New("items are locked"))
		}
	})
	require.NoError(t, err)

	err = s.DeleteTodo(ctx, 1, todo.ItemID)
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrStore)

	assert.Equal(t, int64(1), countRows(t, s, &models.Todo{}), "todo delete is rolled back")
	assert.Equal(t, int64(1), countRows(t, s, &models.Item{}))

	got, err := s.GetTodo(ctx, 1, todo.ItemID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Content)
}
