package mail

import (
	"fmt"
	"net/smtp"

	"clipstream-backend/internal/config"

	"github.com/jordan-wright/email"
)

// Sender delivers transactional mail (currently only password-reset codes).
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	senderName string
	from       string
	addr       string
	auth       smtp.Auth
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{
		senderName: cfg.SenderName,
		from:       cfg.From,
		addr:       fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:       smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.senderName, s.from)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	return e.Send(s.addr, s.auth)
}
