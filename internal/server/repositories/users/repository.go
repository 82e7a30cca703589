package users

import (
	"context"

	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByName(ctx context.Context, name string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetPassword(ctx context.Context, name string, passwordHash string) error
	StagePasswordChange(ctx context.Context, name string, code uint32, newPasswordHash string) error
	PromoteStagedPassword(ctx context.Context, name string) error
}
