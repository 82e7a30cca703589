package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/repomanager"
)

// GameService manages game and board lifecycle: creation, joining, and the
// per-user active-game cap. All multi-step mutations run inside store
// transactions; the service keeps no state between calls.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *GameService {
	return &GameService{db: db, repomanager: m, logger: logger.With("module", "games")}
}

// knownErr reports whether err is one of the closed error kinds. Anything
// else escaping a transaction is a store failure on the write path.
func knownErr(err error) bool {
	for _, kind := range []error{
		common.ErrBadRequest, common.ErrInternal, common.ErrMaxGames,
		common.ErrGameNotActive, common.ErrInvalidGame,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// CreateGame validates the parameters and creates an Active game with one
// board for the caller in slot 1. The cap check and both inserts share one
// serializable transaction, so two concurrent creations by the same user
// cannot both pass the count and exceed the cap.
func (s *GameService) CreateGame(ctx context.Context, userName string, boardSize, players int) (int64, error) {

	if boardSize < models.MinBoardSize || boardSize > models.MaxBoardSize {
		s.logger.Warn(ctx, "illegal board size", "size", boardSize)
		return 0, common.ErrIllegalBoardSize
	}

	if players < models.MinPlayers || players > models.MaxPlayers {
		s.logger.Warn(ctx, "illegal amount of players", "players", players)
		return 0, common.ErrInvalidPlayers
	}

	var gameID int64
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelSerializable},
		func(ctx context.Context, tx dbx.DBTX) error {

			active, err := s.repomanager.Boards(tx).CountActiveByUser(ctx, userName)
			if err != nil {
				s.logger.Error(ctx, "error counting active games", "error", err)
				return common.ErrBadRequest
			}
			if active >= models.MaxActiveGames {
				s.logger.Warn(ctx, "active game cap reached", "user", userName, "active", active)
				return common.ErrMaxGames
			}

			id, err := s.repomanager.Games(tx).Create(ctx, boardSize, players)
			if err != nil {
				s.logger.Error(ctx, "error creating game", "error", err)
				return common.ErrBadRequest
			}

			board := &models.Board{
				GameID:   id,
				UserName: userName,
				PlayerID: 1,
				Status:   models.BoardPlacing,
				ShotsMap: models.NewShotMap(boardSize),
			}
			if err := s.repomanager.Boards(tx).Create(ctx, board); err != nil {
				s.logger.Error(ctx, "error creating board", "error", err)
				return common.ErrBadRequest
			}

			gameID = id
			return nil
		})
	if err != nil {
		if !knownErr(err) {
			s.logger.Error(ctx, "error committing game creation", "error", err)
			return 0, common.ErrBadRequest
		}
		return 0, err
	}

	return gameID, nil
}

// JoinGame adds a board for the caller to an existing Active game. The game
// row is locked for the duration of the transaction so two concurrent
// joiners cannot be assigned the same slot.
func (s *GameService) JoinGame(ctx context.Context, userName string, gameID int64) error {

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		game, err := s.repomanager.Games(tx).GetByIDForUpdate(ctx, gameID)
		if err != nil {
			s.logger.Error(ctx, "error retrieving game", "game", gameID, "error", err)
			return common.ErrBadRequest
		}

		if game.Status != models.GameActive {
			return common.ErrGameNotActive
		}

		active, err := s.repomanager.Boards(tx).CountActiveByUser(ctx, userName)
		if err != nil {
			s.logger.Error(ctx, "error counting active games", "error", err)
			return common.ErrBadRequest
		}
		if active >= models.MaxActiveGames {
			s.logger.Warn(ctx, "active game cap reached", "user", userName, "active", active)
			return common.ErrMaxGames
		}

		existing, err := s.repomanager.Boards(tx).ListByGame(ctx, gameID)
		if err != nil {
			s.logger.Error(ctx, "error listing boards", "game", gameID, "error", err)
			return common.ErrBadRequest
		}

		for _, board := range existing {
			if board.UserName == userName {
				s.logger.Warn(ctx, "user already joined", "user", userName, "game", gameID)
				return common.ErrInvalidGame
			}
		}

		if len(existing) >= game.AmountOfPlayers {
			s.logger.Warn(ctx, "game is full", "game", gameID, "players", len(existing))
			return common.ErrInvalidGame
		}

		board := &models.Board{
			GameID:   gameID,
			UserName: userName,
			PlayerID: len(existing) + 1,
			Status:   models.BoardPlacing,
			ShotsMap: models.NewShotMap(game.BoardSize),
		}
		if err := s.repomanager.Boards(tx).Create(ctx, board); err != nil {
			s.logger.Error(ctx, "error creating board", "game", gameID, "error", err)
			return common.ErrBadRequest
		}

		return nil
	})
	if err != nil && !knownErr(err) {
		s.logger.Error(ctx, "error committing game join", "error", err)
		return common.ErrBadRequest
	}

	return err
}
