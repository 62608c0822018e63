package api

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
	"github.com/balkashynov/tend/internal/parser"
)

// createTodoBody also accepts the field names the web form posts
// (description, referenceId).
type createTodoBody struct {
	Content     string          `json:"content"`
	Description string          `json:"description"`
	Type        models.TodoType `json:"type"`
	ParentID    *uint           `json:"parent_id"`
	ReferenceID *uint           `json:"referenceId"`
}

func (b createTodoBody) request() db.CreateTodoRequest {
	req := db.CreateTodoRequest{
		Content:  b.Content,
		Type:     b.Type,
		ParentID: b.ParentID,
	}
	if req.Content == "" {
		req.Content = b.Description
	}
	if req.ParentID == nil {
		req.ParentID = b.ReferenceID
	}
	return req
}

type setCompletedBody struct {
	Completed *bool `json:"completed"`
}

func (s *Server) createTodo(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var body createTodoBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	todo, err := s.store.CreateTodo(c.UserContext(), p.UserID, body.request())
	if err != nil {
		return s.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

type todoLister func(ctx context.Context, userID uint) ([]models.Todo, error)

type todoParentLister func(ctx context.Context, userID, parentID uint) ([]models.Todo, error)

func (s *Server) listTodos(list todoLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		todos, err := list(c.UserContext(), p.UserID)
		if err != nil {
			return s.storeError(c, err)
		}
		return writeTodos(c, todos)
	}
}

// listTodosByParent serves the per-habit and per-value listings; kind names
// the parent in the 400 message.
func (s *Server) listTodosByParent(kind string, list todoParentLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		parentID, err := parser.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Must provide a number for %s ID", kind))
		}
		todos, err := list(c.UserContext(), p.UserID, parentID)
		if err != nil {
			return s.storeError(c, err)
		}
		return writeTodos(c, todos)
	}
}

func (s *Server) setCompleted(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parser.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusNotFound, "Todo not found")
	}

	var body setCompletedBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	if body.Completed == nil {
		return writeError(c, fiber.StatusBadRequest, "completed is required")
	}

	todo, err := s.store.SetCompleted(c.UserContext(), p.UserID, id, *body.Completed)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(todo)
}

func (s *Server) deleteTodo(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parser.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusNotFound, "Todo not found")
	}

	if err := s.store.DeleteTodo(c.UserContext(), p.UserID, id); err != nil {
		return s.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// writeTodos always renders a JSON array, never null.
func writeTodos(c *fiber.Ctx, todos []models.Todo) error {
	if todos == nil {
		todos = []models.Todo{}
	}
	return c.JSON(todos)
}
