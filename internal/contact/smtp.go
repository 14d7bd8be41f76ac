package contact

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// SMTPMailer sends submissions through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, m.compose(msg)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}

	log.Printf("Email sent successfully from %s (%s)", msg.Name, msg.Email)
	return nil
}

func (m *SMTPMailer) compose(msg Message) []byte {
	// header values come from the visitor; strip line breaks so they cannot add headers
	clean := strings.NewReplacer("\r", "", "\n", " ")
	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + clean.Replace(msg.Subject()) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + clean.Replace(msg.Email) + "\r\n" +
		"\r\n" +
		msg.Text() + "\r\n")
}
