// Package smtpmail delivers notifications over plain SMTP with optional
// auth. Message bodies are prepared upstream; this adapter only wraps them
// in minimal headers and hands them to the server.
package smtpmail

import (
	"fmt"
	"net/smtp"
	"strings"

	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// Config carries the SMTP server settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Sender delivers notifications through one SMTP server.
type Sender struct {
	cfg  Config
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender creates an SMTP sender.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:  cfg,
		send: smtp.SendMail,
	}
}

// Send delivers one notification to its recipient.
func (s *Sender) Send(notification ports.Notification) error {
	if notification.Recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", notification.Recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", notification.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(notification.Body)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	return s.send(addr, auth, s.cfg.From, []string{notification.Recipient}, []byte(msg.String()))
}
