package repository

import (
	"context"

	"rcverify-service/internal/domain/entity"
)

// OwnershipHistoryRepository defines the append-only Audit Store contract.
// Entries are never updated or deleted once written.
type OwnershipHistoryRepository interface {
	Save(ctx context.Context, h *entity.OwnershipHistory) (*entity.OwnershipHistory, error)
	FindByRcID(ctx context.Context, rcID string) ([]*entity.OwnershipHistory, error)
}
