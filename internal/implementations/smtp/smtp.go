package smtp

import (
	"context"
	"pwreset/internal/core/domain/mail"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers plain text messages through an SMTP relay.
type Sender struct {
	dialer dialer
}

func NewSender(host string, port int, username string, password string) *Sender {
	return &Sender{dialer: gomail.NewDialer(host, port, username, password)}
}

func (s *Sender) Send(ctx context.Context, message mail.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", message.From)
	m.SetHeader("To", message.To)
	m.SetHeader("Subject", message.Subject)
	m.SetBody("text/plain", message.Body)
	return s.dialer.DialAndSend(m)
}
