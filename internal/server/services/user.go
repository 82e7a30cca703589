// Package services contains the server-side business logic. This file
// implements UserService: login, signup with email verification, user
// administration, and the two-step password-change flow.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/auth"
	"github.com/dmitrijs2005/seabattle/internal/server/mailer"
	"github.com/dmitrijs2005/seabattle/internal/server/models"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/repomanager"
)

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// SignupRequest carries the self-registration fields. Accounts created this
// way start inactive with a pending verification code.
type SignupRequest struct {
	Name         string
	Password     string
	DisplayName  string
	EmailAddress string
	Notify       bool
}

// NewUserRequest carries the admin-creation fields; all of them are chosen
// by the administrator without further rules.
type NewUserRequest struct {
	Name         string
	Password     string
	DisplayName  string
	EmailAddress string
	Admin        bool
	Active       bool
	Notify       bool
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	authority   *auth.Authority
	mailer      mailer.Mailer
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, authority *auth.Authority, mail mailer.Mailer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		authority:   authority,
		mailer:      mail,
		logger:      logger.With("module", "users"),
	}
}

// Login verifies the user's credentials and mints a session token.
func (s *UserService) Login(ctx context.Context, name, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.logger.Error(ctx, "error retrieving user", "error", err)
		return nil, common.ErrInternal
	}

	if !user.Active {
		return nil, common.ErrUserDeactivated
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrWrongPassword
	}

	token, err := s.authority.IssueToken(user.Name, user.Admin)
	if err != nil {
		s.logger.Error(ctx, "error encoding bearer token", "error", err)
		return nil, common.ErrInternal
	}

	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.authority.Validity().Seconds()),
	}, nil
}

// CreateUser inserts a fully-specified user record. Admin-only; the gate
// check happens at the transport layer.
func (s *UserService) CreateUser(ctx context.Context, req *NewUserRequest) error {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "error encrypting password", "error", err)
		return common.ErrInternal
	}

	user := &models.User{
		Name:         req.Name,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		EmailAddress: req.EmailAddress,
		Admin:        req.Admin,
		Active:       req.Active,
		Notify:       req.Notify,
	}

	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		s.logger.Error(ctx, "error creating user", "error", err)
		return common.ErrBadRequest
	}

	return nil
}

// Signup registers a new inactive account: the chosen password is staged and
// a one-time code is mailed out. Nothing is persisted if the mail cannot be
// handed to the relay.
func (s *UserService) Signup(ctx context.Context, req *SignupRequest) error {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByName(ctx, req.Name); err == nil {
		s.logger.Warn(ctx, "signup with a username that already exists", "name", req.Name)
		return common.ErrUserExists
	} else if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "error checking existing user", "error", err)
		return common.ErrInternal
	}

	code, err := auth.NewVerificationCode()
	if err != nil {
		s.logger.Error(ctx, "error generating verification code", "error", err)
		return common.ErrInternal
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "error encrypting password", "error", err)
		return common.ErrInternal
	}

	if err := s.mailer.SendVerificationCode(ctx, req.DisplayName, req.EmailAddress, code); err != nil {
		s.logger.Error(ctx, "error sending verification mail", "error", err)
		return common.ErrInternal
	}

	user := &models.User{
		Name:            req.Name,
		DisplayName:     req.DisplayName,
		EmailAddress:    req.EmailAddress,
		Notify:          req.Notify,
		Verification:    code,
		NewPasswordHash: hash,
	}

	if err := repo.Create(ctx, user); err != nil {
		s.logger.Error(ctx, "error creating user", "error", err)
		return common.ErrBadRequest
	}

	return nil
}

// VerifySignup compares the submitted code against the stored one and, on
// success, promotes the staged password hash and activates the account.
// Callers authenticate by username: no token exists before activation.
func (s *UserService) VerifySignup(ctx context.Context, name string, code uint32) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error(ctx, "error looking up user for signup verification", "error", err)
		return common.ErrInternal
	}

	if code != user.Verification {
		s.logger.Warn(ctx, "signup verification failed", "name", name)
		return common.ErrVerificationFailure
	}

	if err := repo.PromoteStagedPassword(ctx, name); err != nil {
		s.logger.Error(ctx, "error activating user", "error", err)
		return common.ErrBadRequest
	}

	return nil
}

// GetUser looks up a single user record. Admin-only.
func (s *UserService) GetUser(ctx context.Context, name string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.logger.Error(ctx, "error retrieving user", "error", err)
		return nil, common.ErrInternal
	}
	return user, nil
}

// UpdateUser replaces the mutable profile fields of an existing user.
// Admin-only.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByName(ctx, user.Name); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		s.logger.Error(ctx, "error retrieving user", "error", err)
		return common.ErrInternal
	}

	if err := repo.Update(ctx, user); err != nil {
		s.logger.Error(ctx, "error updating user", "error", err)
		return common.ErrBadRequest
	}

	return nil
}

// ChangePassword changes the target user's password. Non-admin callers may
// only target themselves; their change is staged behind a mailed code and
// needs VerifyPasswordChange to take effect. Admin changes apply directly.
//
// The target's own old password is always required, even for admin callers.
// That is the documented contract, odd as it reads.
func (s *UserService) ChangePassword(ctx context.Context, caller auth.Identity, target, oldPassword, newPassword string) error {
	repo := s.repomanager.Users(s.db)

	if !caller.Admin && caller.Name != target {
		return common.ErrNotAdmin
	}

	user, err := repo.GetByName(ctx, target)
	if err != nil {
		s.logger.Error(ctx, "error looking up user for password change", "error", err)
		return common.ErrInternal
	}

	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		s.logger.Warn(ctx, "password verification failed while changing password", "name", target)
		return common.ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error(ctx, "error encrypting password", "error", err)
		return common.ErrInternal
	}

	if caller.Admin {
		if err := repo.SetPassword(ctx, target, hash); err != nil {
			s.logger.Error(ctx, "error changing password", "error", err)
			return common.ErrBadRequest
		}
		return nil
	}

	code, err := auth.NewVerificationCode()
	if err != nil {
		s.logger.Error(ctx, "error generating verification code", "error", err)
		return common.ErrInternal
	}

	if err := s.mailer.SendVerificationCode(ctx, user.DisplayName, user.EmailAddress, code); err != nil {
		s.logger.Error(ctx, "error sending verification mail", "error", err)
		return common.ErrInternal
	}

	if err := repo.StagePasswordChange(ctx, target, code, hash); err != nil {
		s.logger.Error(ctx, "error staging password change", "error", err)
		return common.ErrBadRequest
	}

	return nil
}

// VerifyPasswordChange confirms a staged password change for the
// authenticated caller.
func (s *UserService) VerifyPasswordChange(ctx context.Context, callerName string, code uint32) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByName(ctx, callerName)
	if err != nil {
		s.logger.Error(ctx, "error looking up user for password change verification", "error", err)
		return common.ErrInternal
	}

	if code != user.Verification {
		s.logger.Warn(ctx, "password change verification failed", "name", callerName)
		return common.ErrVerificationFailure
	}

	if err := repo.PromoteStagedPassword(ctx, callerName); err != nil {
		s.logger.Error(ctx, "error updating user", "error", err)
		return common.ErrBadRequest
	}

	return nil
}
