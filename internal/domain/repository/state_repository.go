package repository

import (
	"context"

	"rcverify-service/internal/domain/entity"
)

// StateRepository defines the interface for registration-state reference data.
type StateRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.StateInfo, error)
	ListAll(ctx context.Context) ([]*entity.StateInfo, error)
}
