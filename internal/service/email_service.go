// Package service implements the business logic between the HTTP
// handlers and the repositories.
package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/inotebook/backend/internal/config"
)

// Mailer sends outbound email. Abstracted so tests can capture messages
// without an SMTP server.
type Mailer interface {
	SendPasswordResetEmail(to, resetURL string) error
}

// EmailService sends transactional email over SMTP.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService creates an EmailService from SMTP settings.
func NewEmailService(cfg *config.SMTPSettings) *EmailService {
	return &EmailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordResetEmail delivers the password-reset link to the
// account holder. The link embeds the cleartext token, which exists
// nowhere else; a delivery failure surfaces as a server error and the
// caller does not retry.
func (s *EmailService) SendPasswordResetEmail(to, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Request")
	m.SetBody("text/html", fmt.Sprintf(
		`<p>You requested a password reset for your iNoteBook account.</p>
<p><a href="%s">Click here to reset your password</a></p>
<p>This link is valid for 15 minutes. If you did not request a reset, you can ignore this email.</p>`,
		resetURL,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Failed to send password reset email")
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	log.Info().Str("to", to).Msg("Password reset email sent")
	return nil
}
