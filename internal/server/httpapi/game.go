package httpapi

import (
	"strconv"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/gofiber/fiber/v2"
)

type newGameRequest struct {
	BoardSize int `json:"boardSize"`
	Players   int `json:"players"`
}

type newGameResponse struct {
	GameID int64 `json:"game_id"`
}

func (s *Server) newGame(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}

	caller, err := s.gate.CheckAccess(token, false)
	if err != nil {
		return fail(c, err)
	}

	req := &newGameRequest{}
	if err := c.BodyParser(req); err != nil {
		return fail(c, common.ErrBadRequest)
	}

	gameID, err := s.games.CreateGame(c.UserContext(), caller.Name, req.BoardSize, req.Players)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(newGameResponse{GameID: gameID})
}

func (s *Server) joinGame(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, err)
	}

	caller, err := s.gate.CheckAccess(token, false)
	if err != nil {
		return fail(c, err)
	}

	gameID, err := strconv.ParseInt(c.Params("game_id"), 10, 64)
	if err != nil {
		return fail(c, common.ErrBadRequest)
	}

	if err := s.games.JoinGame(c.UserContext(), caller.Name, gameID); err != nil {
		return fail(c, err)
	}

	return c.SendString("Game joined, place your ships")
}
