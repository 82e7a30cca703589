package boards

import (
	"context"

	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, board *models.Board) error
	ListByGame(ctx context.Context, gameID int64) ([]*models.Board, error)
	// CountActiveByUser returns how many boards the user owns in games that
	// are still Active, which is what the per-user game cap is measured on.
	CountActiveByUser(ctx context.Context, userName string) (int, error)
}
