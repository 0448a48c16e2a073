package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"rcverify-service/internal/domain/repository"
	"rcverify-service/pkg/logger"
	"rcverify-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailMailer sends owner notifications through the Gmail API.
type GmailMailer struct {
	gmailService *gmail.Service
	fromAddress  string
	logger       logger.Logger
}

// NewGmailMailer creates a new Gmail mailer
func NewGmailMailer(ctx context.Context, tokenSource oauth2.TokenSource, fromAddress string, logger logger.Logger) (repository.MailerRepository, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailMailer{
		gmailService: service,
		fromAddress:  fromAddress,
		logger:       logger,
	}, nil
}

// SendRcCreated sends the registration confirmation email
func (m *GmailMailer) SendRcCreated(ctx context.Context, toEmail, ownerName, rcNumber string) error {
	return m.send(ctx, toEmail, templates.SubjectRcCreated, templates.RcCreatedBody(ownerName, rcNumber))
}

// SendOwnershipTransfer sends the transfer confirmation email
func (m *GmailMailer) SendOwnershipTransfer(ctx context.Context, toEmail, ownerName, rcNumber string) error {
	return m.send(ctx, toEmail, templates.SubjectOwnershipTransfer, templates.OwnershipTransferBody(ownerName, rcNumber))
}

func (m *GmailMailer) send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		m.logger.Debug("Skipping email with blank recipient", "subject", subject)
		return nil
	}

	var sb strings.Builder
	if m.fromAddress != "" {
		sb.WriteString(fmt.Sprintf("From: %s\r\n", m.fromAddress))
	}
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(sb.String())),
	}

	_, err := m.gmailService.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send %q to %s: %w", subject, to, err)
	}

	m.logger.Info("Email sent", "to", to, "subject", subject)
	return nil
}
