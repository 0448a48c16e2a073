package gmail

import (
	"context"

	"rcverify-service/internal/domain/repository"
	"rcverify-service/pkg/logger"
)

// noopMailer drops every notification. Used when Gmail credentials are not
// configured so the lifecycle service can stay unaware of the gap.
type noopMailer struct {
	logger logger.Logger
}

// NewNoopMailer returns a mailer that only logs.
func NewNoopMailer(logger logger.Logger) repository.MailerRepository {
	return &noopMailer{logger: logger}
}

func (m *noopMailer) SendRcCreated(ctx context.Context, toEmail, ownerName, rcNumber string) error {
	m.logger.Debug("Dropping created notification, mailer disabled", "rcNumber", rcNumber)
	return nil
}

func (m *noopMailer) SendOwnershipTransfer(ctx context.Context, toEmail, ownerName, rcNumber string) error {
	m.logger.Debug("Dropping transfer notification, mailer disabled", "rcNumber", rcNumber)
	return nil
}
