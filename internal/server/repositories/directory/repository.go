package directory

import (
	"context"

	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.ServerInfo, error)
	SetMotd(ctx context.Context, motd string) error
}
