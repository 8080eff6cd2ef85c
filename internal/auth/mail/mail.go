// Package mail delivers the verification codes used by the sign-up and
// password recovery flows.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends challenge codes to users. Implementations must not log the
// recipient address at levels above debug.
type Mailer interface {
	// SendSignUpCode delivers the email verification code issued at sign-up.
	SendSignUpCode(ctx context.Context, to, code string) error

	// SendPasswordResetCode delivers the password recovery code.
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

// LogMailer writes codes to the log instead of sending email. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	Log *slog.Logger
}

func (m *LogMailer) SendSignUpCode(ctx context.Context, to, code string) error {
	m.Log.Info("sign-up code issued (smtp disabled)", "to", to, "code", code)
	return nil
}

func (m *LogMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	m.Log.Info("password reset code issued (smtp disabled)", "to", to, "code", code)
	return nil
}
