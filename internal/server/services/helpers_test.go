package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/auth"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
	boardsrepo "github.com/dmitrijs2005/seabattle/internal/server/repositories/boards"
	directoryrepo "github.com/dmitrijs2005/seabattle/internal/server/repositories/directory"
	gamesrepo "github.com/dmitrijs2005/seabattle/internal/server/repositories/games"
	usersrepo "github.com/dmitrijs2005/seabattle/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testAuthority() *auth.Authority {
	return auth.NewAuthority([]byte("test-secret"), time.Hour)
}

// --- fakes ---

type fakeUsersRepo struct {
	getOut *models.User
	getErr error

	created   []*models.User
	createErr error

	updated   *models.User
	updateErr error

	setPasswordName string
	setPasswordHash string
	setPasswordErr  error

	stagedName string
	stagedCode uint32
	stagedHash string
	stageErr   error

	promoted   []string
	promoteErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUsersRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = u
	return nil
}

func (f *fakeUsersRepo) SetPassword(ctx context.Context, name, hash string) error {
	if f.setPasswordErr != nil {
		return f.setPasswordErr
	}
	f.setPasswordName = name
	f.setPasswordHash = hash
	return nil
}

func (f *fakeUsersRepo) StagePasswordChange(ctx context.Context, name string, code uint32, hash string) error {
	if f.stageErr != nil {
		return f.stageErr
	}
	f.stagedName = name
	f.stagedCode = code
	f.stagedHash = hash
	return nil
}

func (f *fakeUsersRepo) PromoteStagedPassword(ctx context.Context, name string) error {
	if f.promoteErr != nil {
		return f.promoteErr
	}
	f.promoted = append(f.promoted, name)
	return nil
}

type fakeGamesRepo struct {
	createID  int64
	createErr error

	game   *models.Game
	getErr error
}

func (f *fakeGamesRepo) Create(ctx context.Context, boardSize, players int) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createID, nil
}

func (f *fakeGamesRepo) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.game, nil
}

func (f *fakeGamesRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Game, error) {
	return f.GetByID(ctx, id)
}

type fakeBoardsRepo struct {
	activeCount int
	countErr    error

	boards  []*models.Board
	listErr error

	created   []*models.Board
	createErr error
}

func (f *fakeBoardsRepo) Create(ctx context.Context, b *models.Board) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBoardsRepo) ListByGame(ctx context.Context, gameID int64) ([]*models.Board, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.boards, nil
}

func (f *fakeBoardsRepo) CountActiveByUser(ctx context.Context, userName string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.activeCount, nil
}

type fakeDirectoryRepo struct {
	info   *models.ServerInfo
	getErr error

	motd   string
	setErr error
}

func (f *fakeDirectoryRepo) Get(ctx context.Context) (*models.ServerInfo, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.info, nil
}

func (f *fakeDirectoryRepo) SetMotd(ctx context.Context, motd string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.motd = motd
	return nil
}

type fakeRepoManager struct {
	users     *fakeUsersRepo
	games     *fakeGamesRepo
	boards    *fakeBoardsRepo
	directory *fakeDirectoryRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.users }
func (m *fakeRepoManager) Games(db dbx.DBTX) gamesrepo.Repository      { return m.games }
func (m *fakeRepoManager) Boards(db dbx.DBTX) boardsrepo.Repository    { return m.boards }
func (m *fakeRepoManager) Directory(db dbx.DBTX) directoryrepo.Repository {
	return m.directory
}

type fakeMailer struct {
	sent    []uint32
	sendErr error
}

func (f *fakeMailer) SendVerificationCode(ctx context.Context, displayName, emailAddress string, code uint32) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, code)
	return nil
}
