package mailer

import (
	"context"

	"github.com/dmitrijs2005/seabattle/internal/logging"
)

// NoopMailer logs codes instead of sending them. For development setups
// without an SMTP relay.
type NoopMailer struct {
	logger logging.Logger
}

func NewNoopMailer(logger logging.Logger) *NoopMailer {
	return &NoopMailer{logger: logger.With("module", "mailer")}
}

func (m *NoopMailer) SendVerificationCode(ctx context.Context, displayName, emailAddress string, code uint32) error {
	m.logger.Info(ctx, "verification code issued", "email", emailAddress, "code", code)
	return nil
}
