package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/repomanager"
)

// DirectoryService reads and replaces the server's message of the day.
// Reads are open to anyone; writes sit behind the admin gate at the
// transport layer.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m, logger: logger.With("module", "directory")}
}

func (s *DirectoryService) Motd(ctx context.Context) (string, error) {
	info, err := s.repomanager.Directory(s.db).Get(ctx)
	if err != nil {
		s.logger.Error(ctx, "error fetching server info", "error", err)
		return "", common.ErrInternal
	}
	return info.Motd, nil
}

func (s *DirectoryService) SetMotd(ctx context.Context, motd string) error {
	if err := s.repomanager.Directory(s.db).SetMotd(ctx, motd); err != nil {
		s.logger.Error(ctx, "error changing motd", "error", err)
		return common.ErrBadRequest
	}
	return nil
}
