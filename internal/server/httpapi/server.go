// Package httpapi exposes the server operations over HTTP. It owns header
// parsing, JSON framing, and the mapping from error kinds to status codes;
// all business rules live in the services.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/auth"
	"github.com/dmitrijs2005/seabattle/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	address   string
	gate      *auth.Gate
	users     *services.UserService
	games     *services.GameService
	directory *services.DirectoryService
	logger    logging.Logger
	app       *fiber.App
}

func NewServer(address string, gate *auth.Gate, us *services.UserService, gs *services.GameService, ds *services.DirectoryService, logger logging.Logger) *Server {
	s := &Server{
		address:   address,
		gate:      gate,
		users:     us,
		games:     gs,
		directory: ds,
		logger:    logger.With("module", "http_server"),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(s.requestLogger())

	app.Get("/login", s.login)
	app.Post("/signup", s.signup)
	app.Post("/signup/verification", s.verifySignup)
	app.Post("/user", s.newUser)
	app.Get("/user/:id", s.getUser)
	app.Post("/user/:id", s.updateUser)
	app.Put("/user/:id/password", s.changePassword)
	app.Post("/user/:id/verification", s.verifyPasswordChange)
	app.Get("/motd", s.getMotd)
	app.Post("/server/motd", s.setMotd)
	app.Post("/game", s.newGame)
	app.Post("/game/:game_id", s.joinGame)

	s.app = app
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
