package repository

import (
	"context"
)

// MailerRepository is the Notification Gateway: fire-and-forget owner
// emails. Implementations must treat a blank recipient as a no-op and
// callers never consume the outcome beyond logging.
type MailerRepository interface {
	SendRcCreated(ctx context.Context, toEmail, ownerName, rcNumber string) error
	SendOwnershipTransfer(ctx context.Context, toEmail, ownerName, rcNumber string) error
}
