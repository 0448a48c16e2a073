package usecase

import (
	"context"
	"errors"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"
	"rcverify-service/pkg/logger"
	"rcverify-service/pkg/metrics"
	"rcverify-service/pkg/utils"
)

// UpdateMissingPolicy controls what Update does when the id does not exist.
type UpdateMissingPolicy string

const (
	// PolicyUpsert silently creates a new record under the given id.
	// This matches the historical behavior and is the default.
	PolicyUpsert UpdateMissingPolicy = "upsert"
	// PolicyStrict rejects the update with ErrNotFound.
	PolicyStrict UpdateMissingPolicy = "strict"
)

const notifyTimeout = 30 * time.Second

// RcService orchestrates validation, normalization, persistence, ownership
// audit detection and notification triggering for Rc records.
type RcService struct {
	rcRepo       repository.RcRepository
	historyRepo  repository.OwnershipHistoryRepository
	mailer       repository.MailerRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
	updatePolicy UpdateMissingPolicy
}

// NewRcService creates a new Rc lifecycle service. metrics may be nil.
func NewRcService(
	rcRepo repository.RcRepository,
	historyRepo repository.OwnershipHistoryRepository,
	mailer repository.MailerRepository,
	m *metrics.Metrics,
	logger logger.Logger,
	updatePolicy UpdateMissingPolicy,
) *RcService {
	if updatePolicy == "" {
		updatePolicy = PolicyUpsert
	}
	return &RcService{
		rcRepo:       rcRepo,
		historyRepo:  historyRepo,
		mailer:       mailer,
		metrics:      m,
		logger:       logger,
		updatePolicy: updatePolicy,
	}
}

// GetAll returns every record in the store.
func (s *RcService) GetAll(ctx context.Context) ([]*entity.Rc, error) {
	return s.rcRepo.FindAll(ctx)
}

// GetByID returns the record or repository.ErrNotFound.
func (s *RcService) GetByID(ctx context.Context, id string) (*entity.Rc, error) {
	return s.rcRepo.FindByID(ctx, id)
}

// SearchByRcNumber does an exact lookup by registration number.
func (s *RcService) SearchByRcNumber(ctx context.Context, rcNumber string) (*entity.Rc, error) {
	rc, err := s.rcRepo.FindByRcNumber(ctx, rcNumber)
	s.countOperation("search")
	return rc, err
}

// Create validates, normalizes and persists a new record, then fires the
// registration email when an owner email is present.
func (s *RcService) Create(ctx context.Context, rc *entity.Rc) (*entity.Rc, error) {
	if err := validateRequired(rc); err != nil {
		return nil, err
	}
	normalize(rc)

	now := time.Now()
	rc.CreatedAt = now
	rc.UpdatedAt = now

	saved, err := s.rcRepo.Save(ctx, rc)
	if err != nil {
		return nil, err
	}
	s.countOperation("create")
	s.logger.Info("RC created", "id", saved.ID, "rcNumber", saved.RcNumber)

	if saved.Owner.Email != "" {
		s.notifyAsync("created", saved.Owner.Email, saved.Owner.Name, saved.RcNumber)
	}

	return saved, nil
}

// Update re-validates and persists the record under the given id. When the
// owner name changed against the stored record, exactly one ownership
// history entry is appended and the transfer email is fired. The RC write
// and the history append are two separate Mongo writes with no transaction
// spanning them; a crash in between leaves the RC updated without an audit
// entry, which is why append failures are logged as consistency warnings.
func (s *RcService) Update(ctx context.Context, id string, rc *entity.Rc) (*entity.Rc, error) {
	existing, err := s.rcRepo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing == nil && s.updatePolicy == PolicyStrict {
		return nil, repository.ErrNotFound
	}

	rc.ID = id
	if err := validateRequired(rc); err != nil {
		return nil, err
	}
	normalize(rc)

	// createdAt always comes from the store, never from the caller.
	if existing != nil {
		rc.CreatedAt = existing.CreatedAt
	} else if rc.CreatedAt.IsZero() {
		rc.CreatedAt = time.Now()
	}
	rc.UpdatedAt = time.Now()

	saved, err := s.rcRepo.Save(ctx, rc)
	if err != nil {
		return nil, err
	}
	s.countOperation("update")

	if existing != nil && existing.Owner.Name != "" && saved.Owner.Name != "" &&
		existing.Owner.Name != saved.Owner.Name {
		s.recordTransfer(ctx, existing.Owner.Name, saved)
	}

	return saved, nil
}

// Delete removes the record. Deleting a missing id succeeds silently and
// the ownership history of the record is retained as an audit trail.
func (s *RcService) Delete(ctx context.Context, id string) error {
	if err := s.rcRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.countOperation("delete")
	s.logger.Info("RC deleted", "id", id)
	return nil
}

// GetHistory returns the ownership audit trail, newest transfer first.
func (s *RcService) GetHistory(ctx context.Context, rcID string) ([]*entity.OwnershipHistory, error) {
	return s.historyRepo.FindByRcID(ctx, rcID)
}

// recordTransfer appends one audit entry and fires the transfer email.
// Both are best-effort after the RC write has already succeeded.
func (s *RcService) recordTransfer(ctx context.Context, previousName string, saved *entity.Rc) {
	h := &entity.OwnershipHistory{
		RcID:                 saved.ID,
		RcNumber:             saved.RcNumber,
		PreviousOwnerName:    previousName,
		NewOwnerName:         saved.Owner.Name,
		TransferredAt:        time.Now(),
		StolenAtTransfer:     saved.Stolen,
		SuspiciousAtTransfer: saved.Suspicious,
	}

	if _, err := s.historyRepo.Save(ctx, h); err != nil {
		// RC write already succeeded; the stores share no transaction.
		s.logger.Error("Ownership history append failed after RC write",
			"rcId", saved.ID, "rcNumber", saved.RcNumber, "error", err)
		if s.metrics != nil {
			s.metrics.AuditWriteFailures.Inc()
		}
		return
	}
	s.logger.Info("Ownership transfer recorded",
		"rcId", saved.ID, "previousOwner", previousName, "newOwner", saved.Owner.Name)

	if saved.Owner.Email != "" {
		s.notifyAsync("transferred", saved.Owner.Email, saved.Owner.Name, saved.RcNumber)
	}
}

// notifyAsync dispatches an owner email without blocking the caller.
// Delivery failures are logged and counted, never surfaced.
func (s *RcService) notifyAsync(kind, toEmail, ownerName, rcNumber string) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		var err error
		switch kind {
		case "created":
			err = s.mailer.SendRcCreated(ctx, toEmail, ownerName, rcNumber)
		case "transferred":
			err = s.mailer.SendOwnershipTransfer(ctx, toEmail, ownerName, rcNumber)
		}

		outcome := "ok"
		if err != nil {
			outcome = "error"
			s.logger.Warn("Notification dispatch failed",
				"kind", kind, "rcNumber", rcNumber, "error", err)
		}
		if s.metrics != nil {
			s.metrics.NotificationsSent.WithLabelValues(kind, outcome).Inc()
		}
	}()
}

func (s *RcService) countOperation(op string) {
	if s.metrics != nil {
		s.metrics.RcOperations.WithLabelValues(op).Inc()
	}
}

// validateRequired checks the required fields in a fixed order and reports
// the first one missing.
func validateRequired(rc *entity.Rc) error {
	if utils.IsBlank(rc.RcNumber) {
		return newValidationError("rcNumber", "rcNumber is required")
	}
	if utils.IsBlank(rc.Owner.Name) {
		return newValidationError("owner.name", "owner.name is required")
	}
	if utils.IsBlank(rc.RegistrationState) {
		return newValidationError("registrationState", "registrationState is required")
	}
	if utils.IsBlank(rc.VehicleInfo.Make) || utils.IsBlank(rc.VehicleInfo.Model) {
		return newValidationError("vehicleInfo", "vehicleInfo.make and vehicleInfo.model are required")
	}
	if utils.IsBlank(rc.ChassisNumber) {
		return newValidationError("chassisNumber", "chassisNumber is required")
	}
	if utils.IsBlank(rc.EngineNumber) {
		return newValidationError("engineNumber", "engineNumber is required")
	}
	return nil
}

// normalize makes previousOwners non-nil and recomputes ownersCount.
// Caller-supplied ownersCount values are always overwritten.
func normalize(rc *entity.Rc) {
	if rc.PreviousOwners == nil {
		rc.PreviousOwners = []string{}
	}
	rc.OwnersCount = 1 + len(rc.PreviousOwners)
}
