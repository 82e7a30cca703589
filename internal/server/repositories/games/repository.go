package games

import (
	"context"

	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, boardSize, amountOfPlayers int) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	// GetByIDForUpdate locks the game row until the surrounding transaction
	// ends, serializing slot assignment between concurrent joiners.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error)
}
