package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/dmitrijs2005/seabattle/internal/logging"
	"github.com/dmitrijs2005/seabattle/internal/server/auth"
	"github.com/dmitrijs2005/seabattle/internal/server/mailer"
	"github.com/dmitrijs2005/seabattle/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/seabattle/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{common.ErrBadRequest, fiber.StatusBadRequest},
		{common.ErrUserExists, fiber.StatusBadRequest},
		{common.ErrUserDeactivated, fiber.StatusBadRequest},
		{common.ErrIllegalBoardSize, fiber.StatusBadRequest},
		{common.ErrInvalidPlayers, fiber.StatusBadRequest},
		{common.ErrGameNotActive, fiber.StatusBadRequest},
		{common.ErrInvalidGame, fiber.StatusBadRequest},
		{common.ErrVerificationFailure, fiber.StatusBadRequest},
		{common.ErrUserNotFound, fiber.StatusNotFound},
		{common.ErrWrongPassword, fiber.StatusUnauthorized},
		{common.ErrInvalidToken, fiber.StatusUnauthorized},
		{common.ErrNotAdmin, fiber.StatusUnauthorized},
		{common.ErrMaxGames, fiber.StatusTooManyRequests},
		{common.ErrInternal, fiber.StatusInternalServerError},
		{io.EOF, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

// newTestServer wires real services over a sqlmock database.
func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, *auth.Authority) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	authority := auth.NewAuthority([]byte("test-secret"), time.Hour)
	gate := auth.NewGate(authority)
	rm := repomanager.NewPostgresRepositoryManager()

	us := services.NewUserService(db, rm, authority, mailer.NewNoopMailer(logger), logger)
	gs := services.NewGameService(db, rm, logger)
	ds := services.NewDirectoryService(db, rm, logger)

	return NewServer(":0", gate, us, gs, ds, logger), mock, authority
}

func TestMotd_AdminSetThenAnonymousGet(t *testing.T) {
	srv, mock, authority := newTestServer(t)

	adminToken, err := authority.IssueToken("root", true)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	mock.ExpectExec(`UPDATE\s+server\s+SET\s+motd`).
		WithArgs("ahoy", "seabattle").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/server/motd", strings.NewReader(`{"motd":"ahoy"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)

	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set motd status = %d", resp.StatusCode)
	}

	mock.ExpectQuery(`SELECT\s+name,\s+motd\s+FROM\s+server`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "motd"}).AddRow("seabattle", "ahoy"))

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/motd", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get motd status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ahoy") {
		t.Fatalf("motd missing from body: %s", body)
	}
}

func TestSetMotd_NonAdminRejected(t *testing.T) {
	srv, _, authority := newTestServer(t)

	userToken, err := authority.IssueToken("bob", false)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/server/motd", strings.NewReader(`{"motd":"hijacked"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+userToken)

	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestNewGame_MissingToken(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/game", strings.NewReader(`{"boardSize":10,"players":2}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestNewGame_IllegalBoardSize(t *testing.T) {
	srv, _, authority := newTestServer(t)

	token, err := authority.IssueToken("alice", false)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/game", strings.NewReader(`{"boardSize":7,"players":2}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
