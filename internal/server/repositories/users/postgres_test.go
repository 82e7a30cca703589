package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,.*new_password_hash\)\s*VALUES\s*\(\$1,.*\$9\)\s*$`

	mock.ExpectExec(q).
		WithArgs("alice", "", "Alice", "alice@example.com", false, false, true, int64(12345), "staged-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{
		Name:            "alice",
		DisplayName:     "Alice",
		EmailAddress:    "alice@example.com",
		Notify:          true,
		Verification:    12345,
		NewPasswordHash: "staged-hash",
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.User{Name: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByName_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"name", "password_hash", "display_name", "email_address",
		"admin", "active", "notify", "verification", "new_password_hash",
	}).AddRow("alice", "hash", "Alice", "alice@example.com", false, true, true, int64(0), "")

	mock.ExpectQuery(`SELECT\s+name,.*FROM\s+users\s+WHERE\s+name\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByName error: %v", err)
	}
	if got.Name != "alice" || !got.Active || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+name,.*FROM\s+users`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestPromoteStagedPassword(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+password_hash\s*=\s*new_password_hash,\s*new_password_hash\s*=\s*'',\s*verification\s*=\s*0,\s*active\s*=\s*TRUE\s+WHERE\s+name\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.PromoteStagedPassword(context.Background(), "alice"); err != nil {
		t.Fatalf("PromoteStagedPassword error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStagePasswordChange(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+verification\s*=\s*\$1,\s*new_password_hash\s*=\s*\$2\s+WHERE\s+name\s*=\s*\$3`).
		WithArgs(int64(777), "new-hash", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.StagePasswordChange(context.Background(), "alice", 777, "new-hash"); err != nil {
		t.Fatalf("StagePasswordChange error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
