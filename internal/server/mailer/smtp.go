package mailer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/seabattle/internal/server/config"
	"github.com/wneessen/go-mail"
)

// SMTPMailer sends verification codes through an SMTP relay over STARTTLS.
type SMTPMailer struct {
	client         *mail.Client
	from           string
	replyToName    string
	replyToAddress string
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		client:         client,
		from:           cfg.EmailFrom,
		replyToName:    cfg.EmailReplyToName,
		replyToAddress: cfg.EmailReplyToAddress,
	}, nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, displayName, emailAddress string, code uint32) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.ReplyToFormat(m.replyToName, m.replyToAddress); err != nil {
		return fmt.Errorf("mail reply-to: %w", err)
	}
	if err := msg.AddToFormat(displayName, emailAddress); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject("Here is your verification code for the requested action on the sea battle server")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Verification number: %d", code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}

	return nil
}
