package users

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

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {

	query :=
		`INSERT INTO users (name, password_hash, display_name, email_address, admin, active, notify, verification, new_password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.PasswordHash, user.DisplayName, user.EmailAddress,
		user.Admin, user.Active, user.Notify, int64(user.Verification), user.NewPasswordHash)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	query :=
		`SELECT name, password_hash, display_name, email_address, admin, active, notify, verification, new_password_hash
		 FROM users
		 WHERE name = $1
		 `

	user := &models.User{}
	var verification int64
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&user.Name, &user.PasswordHash, &user.DisplayName, &user.EmailAddress,
		&user.Admin, &user.Active, &user.Notify, &verification, &user.NewPasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Verification = uint32(verification)
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET display_name = $1, email_address = $2, admin = $3, active = $4, notify = $5
		 WHERE name = $6
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.DisplayName, user.EmailAddress, user.Admin, user.Active, user.Notify, user.Name)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetPassword(ctx context.Context, name string, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $1
		 WHERE name = $2
		 `

	_, err := r.db.ExecContext(ctx, query, passwordHash, name)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) StagePasswordChange(ctx context.Context, name string, code uint32, newPasswordHash string) error {
	query :=
		`UPDATE users SET verification = $1, new_password_hash = $2
		 WHERE name = $3
		 `

	_, err := r.db.ExecContext(ctx, query, int64(code), newPasswordHash, name)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// PromoteStagedPassword moves the staged hash into place, clears the pending
// code, and activates the account. Used by both signup and password-change
// verification.
func (r *PostgresRepository) PromoteStagedPassword(ctx context.Context, name string) error {
	query :=
		`UPDATE users
		 SET password_hash = new_password_hash, new_password_hash = '', verification = 0, active = TRUE
		 WHERE name = $1
		 `

	_, err := r.db.ExecContext(ctx, query, name)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
