// Package mailer delivers confirmation codes over SMTP. Delivery is an
// external concern; services depend on the Mailer interface so tests
// can swap it out.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, username, code string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg     SMTPConfig
	limiter *rate.Limiter
	timeout time.Duration
}

// NewSMTPMailer builds a mailer throttled to one send per second with
// small bursts, so a signup storm cannot flood the relay.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		timeout: 30 * time.Second,
	}
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail throttle: %w", err)
	}

	msg := m.buildMessage(to, username, code)
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.timeout):
		return fmt.Errorf("send mail: timeout after %s", m.timeout)
	}
}

func (m *SMTPMailer) buildMessage(to, username, code string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Confirmation code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("Hello %s,\r\n\r\n", username))
	msg.WriteString(fmt.Sprintf("Your confirmation code is: %s\r\n", code))
	return msg.String()
}

// LogMailer writes codes to the log instead of sending mail. Used in
// development when SMTP is not configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendConfirmationCode(_ context.Context, to, username, code string) error {
	m.Logger.Info("confirmation code issued",
		"to", to,
		"username", username,
		"code", code,
	)
	return nil
}
