package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers transactional mail over plain SMTP with optional
// PLAIN auth. Callers treat delivery as fire-and-forget; errors are for
// logging only and never fail the triggering operation.
type SMTPMailer struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
	FromName string
}

func (m *SMTPMailer) SendConfirmation(ctx context.Context, email, username, baseURL, token string) error {
	subject := "Confirm your email"
	body := fmt.Sprintf(
		"Hi %s,\n\nFollow the link below to confirm your email:\n\n%s/api/auth/confirm_email/%s\n\nThe link is valid for 7 days.\n",
		username, baseURL, token,
	)
	return m.send(ctx, email, subject, body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, username, token string) error {
	subject := "Password reset token"
	body := fmt.Sprintf(
		"Hi %s,\n\nUse this token to reset your password:\n\n%s\n\nIf you did not request a reset, ignore this message.\n",
		username, token,
	)
	return m.send(ctx, email, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := mail.Address{Name: m.FromName, Address: m.From}

	var msg strings.Builder
	msg.WriteString("From: " + from.String() + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	host := m.Addr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}

	if err := smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
