// Package mailer delivers one-time verification codes to users. Delivery is
// fire-and-forget from the caller's point of view: a failure means the code
// never left the building and the triggering operation must not proceed.
package mailer

import "context"

type Mailer interface {
	SendVerificationCode(ctx context.Context, displayName, emailAddress string, code uint32) error
}
