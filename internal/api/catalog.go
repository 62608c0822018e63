package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/balkashynov/tend/internal/db"
	"github.com/balkashynov/tend/internal/models"
	"github.com/balkashynov/tend/internal/parser"
)

type createValueBody struct {
	Description string `json:"description"`
	Color       string `json:"color"`
}

type createHabitBody struct {
	Description string `json:"description"`
	ValueID     *uint  `json:"value_id"`
}

type createEventBody struct {
	Description string `json:"description"`
	TodoID      *uint  `json:"todo_id"`
}

func (s *Server) createValue(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var body createValueBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	value, err := s.store.CreateValue(c.UserContext(), p.UserID, db.CreateValueRequest{
		Description: body.Description,
		Color:       body.Color,
	})
	if err != nil {
		return s.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(value)
}

func (s *Server) listValues(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	values, err := s.store.ListValues(c.UserContext(), p.UserID)
	if err != nil {
		return s.storeError(c, err)
	}
	if values == nil {
		values = []models.Value{}
	}
	return c.JSON(values)
}

func (s *Server) deleteValue(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parser.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusNotFound, "Value not found")
	}
	if err := s.store.DeleteValue(c.UserContext(), p.UserID, id); err != nil {
		return s.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) createHabit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var body createHabitBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	habit, err := s.store.CreateHabit(c.UserContext(), p.UserID, db.CreateHabitRequest{
		Description: body.Description,
		ValueID:     body.ValueID,
	})
	if err != nil {
		return s.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (s *Server) listHabits(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	habits, err := s.store.ListHabits(c.UserContext(), p.UserID)
	if err != nil {
		return s.storeError(c, err)
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return c.JSON(habits)
}

func (s *Server) deleteHabit(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := parser.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusNotFound, "Habit not found")
	}
	if err := s.store.DeleteHabit(c.UserContext(), p.UserID, id); err != nil {
		return s.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) createEvent(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var body createEventBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := s.store.CreateEvent(c.UserContext(), p.UserID, db.CreateEventRequest{
		Description: body.Description,
		TodoID:      body.TodoID,
	})
	if err != nil {
		return s.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (s *Server) listEvents(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	events, err := s.store.ListEvents(c.UserContext(), p.UserID)
	if err != nil {
		return s.storeError(c, err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return c.JSON(events)
}
