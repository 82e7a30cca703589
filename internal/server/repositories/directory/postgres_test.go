package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/seabattle/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+name,\s+motd\s+FROM\s+server\s+WHERE\s+name\s*=\s*\$1`).
		WithArgs("seabattle").
		WillReturnRows(sqlmock.NewRows([]string{"name", "motd"}).AddRow("seabattle", "ahoy"))

	info, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if info.Motd != "ahoy" {
		t.Fatalf("unexpected motd: %q", info.Motd)
	}
}

func TestGet_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+name,\s+motd\s+FROM\s+server`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestSetMotd(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+server\s+SET\s+motd\s*=\s*\$1\s+WHERE\s+name\s*=\s*\$2`).
		WithArgs("ahoy", "seabattle").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetMotd(context.Background(), "ahoy"); err != nil {
		t.Fatalf("SetMotd error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
