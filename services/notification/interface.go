package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a plain-text e-mail.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through an SMTP relay. Auth is used only when a username is set.
type SMTPSender struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@detailing.local"
	}
	s := &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		host: host,
		from: from,
	}
	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("SMTPSender: failed to send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	// Header values must not carry line breaks.
	clean := strings.NewReplacer("\r", "", "\n", " ")
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		clean.Replace(from),
		clean.Replace(to),
		clean.Replace(subject),
		body,
	)
}
