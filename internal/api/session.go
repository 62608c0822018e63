package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/balkashynov/tend/internal/auth"
)

// requireSession verifies the session cookie (or a bearer token) and puts
// the principal into the request context.
func (s *Server) requireSession(c *fiber.Ctx) error {
	token := c.Cookies(s.cookie)
	if token == "" {
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}

	p, err := s.issuer.Verify(token)
	if err != nil {
		msg := auth.ErrInvalidSession.Error()
		if errors.Is(err, auth.ErrNoSession) {
			msg = auth.ErrNoSession.Error()
		}
		return writeError(c, fiber.StatusUnauthorized, msg)
	}

	c.SetUserContext(auth.WithPrincipal(c.UserContext(), p))
	return c.Next()
}

// principal returns the caller set by requireSession.
func principal(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := auth.FromContext(c.UserContext())
	if !ok {
		return auth.Principal{}, fiber.NewError(fiber.StatusUnauthorized, auth.ErrNoSession.Error())
	}
	return p, nil
}

type loginBody struct {
	Token string `json:"token"`
}

// login exchanges a token minted by `tend token` for a session cookie.
func (s *Server) login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	p, err := s.issuer.Verify(body.Token)
	if err != nil {
		return writeError(c, fiber.StatusUnauthorized, auth.ErrInvalidSession.Error())
	}

	// The cookie lives exactly as long as the token it carries.
	c.Cookie(&fiber.Cookie{
		Name:     s.cookie,
		Value:    body.Token,
		Path:     "/",
		Expires:  p.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"user_id": p.UserID})
}

func (s *Server) whoami(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user_id": p.UserID})
}

func (s *Server) logout(c *fiber.Ctx) error {
	c.ClearCookie(s.cookie)
	return c.SendStatus(fiber.StatusNoContent)
}
