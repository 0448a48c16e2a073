package repository

import (
	"context"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormStateRepository implements the StateRepository interface
type GormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new GORM state repository
func NewGormStateRepository(db *gorm.DB) repository.StateRepository {
	return &GormStateRepository{
		db: db,
	}
}

// States GORM model for database mapping
type States struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (States) TableName() string {
	return "m_states"
}

// GetByCode finds a registration state by its code
func (r *GormStateRepository) GetByCode(ctx context.Context, code string) (*entity.StateInfo, error) {
	var state States
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&state)

	if result.Error != nil {
		return nil, result.Error
	}

	return toStateInfo(&state), nil
}

// ListAll returns every registration state reference row
func (r *GormStateRepository) ListAll(ctx context.Context) ([]*entity.StateInfo, error) {
	var states []States
	result := r.db.WithContext(ctx).Order("code asc").Find(&states)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]*entity.StateInfo, 0, len(states))
	for i := range states {
		out = append(out, toStateInfo(&states[i]))
	}
	return out, nil
}

func toStateInfo(s *States) *entity.StateInfo {
	return &entity.StateInfo{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		DeletedAt: s.DeletedAt,
	}
}
