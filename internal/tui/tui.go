package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
)

// Backend is the part of the store the board drives. *db.Store satisfies it.
type Backend interface {
	ListValues(ctx context.Context, userID uint) ([]models.Value, error)
	ListHabits(ctx context.Context, userID uint) ([]models.Habit, error)
	ListIncomplete(ctx context.Context, userID uint) ([]models.Todo, error)
	ListIncompleteByHabit(ctx context.Context, userID, habitID uint) ([]models.Todo, error)
	ListIncompleteByValue(ctx context.Context, userID, valueID uint) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID uint, req db.CreateTodoRequest) (*models.Todo, error)
	SetCompleted(ctx context.Context, userID, id uint, completed bool) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id uint) error
}

// RunBoard starts the interactive todo board for userID
func RunBoard(ctx context.Context, backend Backend, userID uint) error {
	model := NewBoardModel(ctx, backend, userID)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(BoardModel); ok && m.added > 0 {
		fmt.Printf("✅ Added %d todo(s)\n", m.added)
	}
	return nil
}
