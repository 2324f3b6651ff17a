// Package notification delivers account lifecycle emails through Mailgun.
package notification

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"

	"gamestore/config"
	"gamestore/internal/domain/service"
)

const sendTimeout = 10 * time.Second

// mailgunGateway is a concrete implementation of the NotificationGateway
// interface backed by the Mailgun API.
type mailgunGateway struct {
	client *mg.MailgunImpl
	sender string
}

// NewMailgunGateway is the constructor for mailgunGateway.
func NewMailgunGateway(cfg *config.Config) (service.NotificationGateway, error) {
	if cfg.Mail == nil || cfg.Mail.Domain == "" || cfg.Mail.APIKey == "" {
		return nil, errors.New("mailgun domain and api key must be provided")
	}

	return &mailgunGateway{
		client: mg.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey),
		sender: cfg.Mail.Sender,
	}, nil
}

// SendConfirmation delivers the email-confirmation link after registration.
func (g *mailgunGateway) SendConfirmation(ctx context.Context, email, name, link string) error {
	subject := "Confirm your email address"
	text := fmt.Sprintf("Hi %s,\n\nWelcome! Please confirm your email address by opening the link below:\n\n%s\n\nThe link is valid for 48 hours.", name, link)

	return g.send(ctx, email, subject, text)
}

// SendPasswordReset delivers the password-reset link.
func (g *mailgunGateway) SendPasswordReset(ctx context.Context, email, name, link string) error {
	subject := "Reset your password"
	text := fmt.Sprintf("Hi %s,\n\nA password reset was requested for your account. Open the link below to choose a new password:\n\n%s\n\nThe link expires in 5 minutes. If you did not request this, you can ignore this mail.", name, link)

	return g.send(ctx, email, subject, text)
}

// SendEmailChangeConfirmation notifies the current address about a pending
// change to a new one.
func (g *mailgunGateway) SendEmailChangeConfirmation(ctx context.Context, email, name, newEmail, link string) error {
	subject := "Confirm your email change"
	text := fmt.Sprintf("Hi %s,\n\nA change of your account email to %s was requested. Open the link below to confirm it:\n\n%s\n\nIf you did not request this, contact support immediately.", name, newEmail, link)

	return g.send(ctx, email, subject, text)
}

// SendTemporaryPassword delivers an admin-assigned temporary password.
func (g *mailgunGateway) SendTemporaryPassword(ctx context.Context, email, name, temporaryPassword, link string) error {
	subject := "Your account is ready"
	text := fmt.Sprintf("Hi %s,\n\nAn account was created for you. Your temporary password is:\n\n%s\n\nYou must choose your own password before logging in; open the link below to set it:\n\n%s", name, temporaryPassword, link)

	return g.send(ctx, email, subject, text)
}

func (g *mailgunGateway) send(ctx context.Context, to, subject, text string) error {
	msg := g.client.NewMessage(g.sender, subject, text, to)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, _, err := g.client.Send(sendCtx, msg); err != nil {
		return errors.Wrapf(err, "failed to send %q mail", subject)
	}

	return nil
}
