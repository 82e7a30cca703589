package boards

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, board *models.Board) error {

	query :=
		`INSERT INTO boards (game_id, user_name, player_id, status, shots_map)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		board.GameID, board.UserName, board.PlayerID, board.Status, []byte(board.ShotsMap))

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByGame(ctx context.Context, gameID int64) ([]*models.Board, error) {
	query :=
		`SELECT game_id, user_name, player_id, status, shots_fired, shots_map, score
		 FROM boards
		 WHERE game_id = $1
		 ORDER BY player_id
		 `

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Board
	for rows.Next() {
		board := &models.Board{}
		var shotsMap []byte
		if err := rows.Scan(&board.GameID, &board.UserName, &board.PlayerID,
			&board.Status, &board.ShotsFired, &shotsMap, &board.Score); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		board.ShotsMap = models.ShotMap(shotsMap)
		result = append(result, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountActiveByUser(ctx context.Context, userName string) (int, error) {
	query :=
		`SELECT count(*)
		 FROM boards
		 INNER JOIN games ON boards.game_id = games.id
		 WHERE games.status = $1 AND boards.user_name = $2
		 `

	var count int
	err := r.db.QueryRowContext(ctx, query, models.GameActive, userName).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}
