package mail

import (
	"context"
	"errors"
	"strings"
)

var ErrNoRecipient = errors.New("message has no recipient")

// Message is a plain text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, message Message) error
}
