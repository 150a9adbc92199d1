// Package email delivers notification mail over SMTP. With email disabled in
// configuration every send becomes a no-op, so callers never branch on it.
package email

import (
	"context"
	"crypto/tls"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"perftrack/internal/domain/notifications"
	"perftrack/internal/platform/config"
)

const dialTimeout = 10 * time.Second

// New selects a mailer from the SMTP settings. Disabled email or a missing
// host yields the discard mailer.
func New(cfg config.Config) notifications.Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return Discard{}
	}
	return &Sender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		useTLS:   cfg.SMTPUseTLS,
	}
}

// Discard drops every message.
type Discard struct{}

func (Discard) Send(context.Context, string, string, string, string) error { return nil }

// Sender speaks plain SMTP with optional STARTTLS and AUTH PLAIN.
type Sender struct {
	host     string
	port     int
	username string
	password string
	useTLS   bool
}

func (s *Sender) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.useTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}
	if s.username != "" {
		plain := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(plain); err != nil {
			return err
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(message(from, to, subject, body))); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func message(from, to, subject, body string) string {
	var b strings.Builder
	for _, header := range [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/plain; charset="UTF-8"`},
	} {
		b.WriteString(header[0])
		b.WriteString(": ")
		b.WriteString(header[1])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}
