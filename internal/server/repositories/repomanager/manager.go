package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/seabattle/internal/dbx"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/boards"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/directory"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/games"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a *sql.DB or an open
// transaction, so services can run the same repository code inside and
// outside of dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Games(db dbx.DBTX) games.Repository
	Boards(db dbx.DBTX) boards.Repository
	Directory(db dbx.DBTX) directory.Repository
}
