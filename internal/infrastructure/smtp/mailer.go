package smtp

import (
	"fmt"
	"net/smtp"

	"hamrah-bazaar/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     int
	from     string
	username string
	password string
}

func NewMailer(cfg *config.SMTPConfig) Mailer {
	return &mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		username: cfg.User,
		password: cfg.Password,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
