// Package directory stores the singleton server record (name plus the
// message of the day).
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

// serverName keys the singleton row seeded by the migrations.
const serverName = "seabattle"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.ServerInfo, error) {
	query :=
		`SELECT name, motd FROM server
		 WHERE name = $1
		 `

	info := &models.ServerInfo{}
	err := r.db.QueryRowContext(ctx, query, serverName).Scan(&info.Name, &info.Motd)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return info, nil
}

func (r *PostgresRepository) SetMotd(ctx context.Context, motd string) error {
	query :=
		`UPDATE server SET motd = $1
		 WHERE name = $2
		 `

	_, err := r.db.ExecContext(ctx, query, motd, serverName)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
