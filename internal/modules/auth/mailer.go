package auth

import (
	"context"
	"log"
)

type Mailer interface {
	SendEmailChangeCode(ctx context.Context, email, code string) error
}

// DevConsoleMailer logs codes instead of sending mail. Good enough for
// local development; production wires a real mailer behind the same
// interface.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendEmailChangeCode(_ context.Context, email, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] email change confirmation email=%s code=%s", email, code)
	}
	return nil
}
