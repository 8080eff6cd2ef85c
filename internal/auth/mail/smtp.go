package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPOptions configures the SMTP mailer.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ChallengeTTLMinutes is surfaced in the email copy.
	ChallengeTTLMinutes int
}

// SMTPMailer delivers codes over SMTP using go-mail.
type SMTPMailer struct {
	client *gomail.Client
	opts   SMTPOptions
}

func NewSMTPMailer(opts SMTPOptions) (*SMTPMailer, error) {
	client, err := gomail.NewClient(opts.Host,
		gomail.WithPort(opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(opts.Username),
		gomail.WithPassword(opts.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: smtp client: %w", err)
	}
	return &SMTPMailer{client: client, opts: opts}, nil
}

func (m *SMTPMailer) SendSignUpCode(ctx context.Context, to, code string) error {
	return m.send(ctx, to, "Confirm your email", "sign_up_code.html", code)
}

func (m *SMTPMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return m.send(ctx, to, "Reset your password", "find_password_code.html", code)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, tmpl, code string) error {
	body, err := renderCode(tmpl, code, m.opts.ChallengeTTLMinutes)
	if err != nil {
		return fmt.Errorf("mail: render %s: %w", tmpl, err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.opts.From); err != nil {
		return fmt.Errorf("mail: from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}
