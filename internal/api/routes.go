package api

import "github.com/gofiber/fiber/v2"

func (s *Server) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")

	// Session
	api.Post("/session", s.login)
	api.Get("/session", s.requireSession, s.whoami)
	api.Delete("/session", s.logout)

	// Todos
	todos := api.Group("/todos", s.requireSession)
	todos.Post("/", s.createTodo)
	todos.Get("/completed", s.listTodos(s.store.ListCompleted))
	todos.Get("/completed/today/noevent", s.listTodos(s.store.ListCompletedTodayNoEvent))
	todos.Get("/incomplete", s.listTodos(s.store.ListIncomplete))
	todos.Get("/incomplete/habit/:id", s.listTodosByParent("habit", s.store.ListIncompleteByHabit))
	todos.Get("/incomplete/value/:id", s.listTodosByParent("value", s.store.ListIncompleteByValue))
	todos.Patch("/:id", s.setCompleted)
	todos.Delete("/:id", s.deleteTodo)

	// Values
	values := api.Group("/values", s.requireSession)
	values.Post("/", s.createValue)
	values.Get("/", s.listValues)
	values.Delete("/:id", s.deleteValue)

	// Habits
	habits := api.Group("/habits", s.requireSession)
	habits.Post("/", s.createHabit)
	habits.Get("/", s.listHabits)
	habits.Delete("/:id", s.deleteHabit)

	// Events
	events := api.Group("/events", s.requireSession)
	events.Post("/", s.createEvent)
	events.Get("/", s.listEvents)
}
