package repository

import (
	"context"
	"time"

	"rcverify-service/internal/domain/entity"
)

// RcRepository defines the Record Store contract for Rc documents.
// ErrNotFound is returned by the point lookups when no document matches.
type RcRepository interface {
	FindAll(ctx context.Context) ([]*entity.Rc, error)
	FindByID(ctx context.Context, id string) (*entity.Rc, error)
	FindByRcNumber(ctx context.Context, rcNumber string) (*entity.Rc, error)
	Save(ctx context.Context, rc *entity.Rc) (*entity.Rc, error)
	DeleteByID(ctx context.Context, id string) error

	// Read-only query capabilities consumed by report endpoints.
	CountByChassisNumber(ctx context.Context, chassisNumber string) (int64, error)
	CountByEngineNumber(ctx context.Context, engineNumber string) (int64, error)
	FindAllActive(ctx context.Context) ([]*entity.Rc, error)
	SearchByOwnerName(ctx context.Context, ownerName string) ([]*entity.Rc, error)
	FindByRegistrationState(ctx context.Context, state string) ([]*entity.Rc, error)
	FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Rc, error)
	FindWithExpiredInsurance(ctx context.Context, asOf time.Time) ([]*entity.Rc, error)
	FindWithExpiredPuc(ctx context.Context, asOf time.Time) ([]*entity.Rc, error)
	SearchByRcNumberPattern(ctx context.Context, pattern string, offset, limit int) ([]*entity.Rc, int64, error)
}
