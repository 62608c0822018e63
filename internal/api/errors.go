package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/balkashynov/tend/internal/db"
)

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// storeError maps a Store failure to its status code. The message goes out
// verbatim.
func (s *Server) storeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch db.KindOf(err) {
	case db.KindValidation:
		status = fiber.StatusBadRequest
	case db.KindNotFound:
		status = fiber.StatusNotFound
	}
	if status == fiber.StatusInternalServerError {
		s.log.Error("store failure",
			"method", c.Method(),
			"path", c.Path(),
			"requestid", c.Locals("requestid"),
			"err", err)
	}
	return writeError(c, status, err.Error())
}

// handleError renders anything a handler returned without writing a body.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else {
		s.log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "err", err)
	}
	return writeError(c, status, err.Error())
}
