package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, boardSize, amountOfPlayers int) (int64, error) {

	query :=
		`INSERT INTO games (board_size, amount_of_players, status)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, boardSize, amountOfPlayers, models.GameActive).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	return r.get(ctx, id, false)
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	return r.get(ctx, id, true)
}

func (r *PostgresRepository) get(ctx context.Context, id int64, forUpdate bool) (*models.Game, error) {
	query :=
		`SELECT id, status, board_size, amount_of_players, placing, started, finished
		 FROM games
		 WHERE id = $1
		 `
	if forUpdate {
		query += " FOR UPDATE"
	}

	game := &models.Game{}
	var started, finished sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID, &game.Status, &game.BoardSize, &game.AmountOfPlayers,
		&game.Placing, &started, &finished)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	game.Started = started.Time
	game.Finished = finished.Time
	return game, nil
}
