package httpapi

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// requestLogger tags every request with an id and logs method, path, status,
// and duration once the handler chain returns.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		start := time.Now()
		err := c.Next()

		s.logger.Info(c.UserContext(), "request",
			"id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)

		return err
	}
}

// basicCredentials extracts the username and password from a Basic
// Authorization header.
func basicCredentials(c *fiber.Ctx) (string, string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", common.ErrBadRequest
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", common.ErrBadRequest
	}

	name, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", common.ErrBadRequest
	}

	return name, password, nil
}

// bearerToken extracts the raw token from a Bearer Authorization header.
// A missing or malformed header counts as an invalid token.
func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", common.ErrInvalidToken
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
