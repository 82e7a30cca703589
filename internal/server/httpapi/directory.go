package httpapi

import (
	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/gofiber/fiber/v2"
)

type motdPayload struct {
	Motd string `json:"motd"`
}

// getMotd is the only read open to unauthenticated callers.
func (s *Server) getMotd(c *fiber.Ctx) error {
	motd, err := s.directory.Motd(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(motdPayload{Motd: motd})
}

func (s *Server) setMotd(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}
	if _, err := s.gate.CheckAccess(token, true); err != nil {
		return fail(c, err)
	}

	req := &motdPayload{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	if err := s.directory.SetMotd(c.UserContext(), req.Motd); err != nil {
		return fail(c, err)
	}

	return c.SendString("MOTD changed")
}
