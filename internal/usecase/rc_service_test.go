package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/internal/domain/repository"
	"rcverify-service/pkg/logger"
)

// fakeRcRepo is an in-memory RcRepository.
type fakeRcRepo struct {
	mu      sync.Mutex
	records map[string]*entity.Rc
	nextID  int
}

func newFakeRcRepo() *fakeRcRepo {
	return &fakeRcRepo{records: make(map[string]*entity.Rc)}
}

func (f *fakeRcRepo) FindAll(ctx context.Context) ([]*entity.Rc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Rc, 0, len(f.records))
	for _, rc := range f.records {
		cp := *rc
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRcRepo) FindByID(ctx context.Context, id string) (*entity.Rc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rc
	return &cp, nil
}

func (f *fakeRcRepo) FindByRcNumber(ctx context.Context, rcNumber string) (*entity.Rc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rc := range f.records {
		if rc.RcNumber == rcNumber {
			cp := *rc
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRcRepo) Save(ctx context.Context, rc *entity.Rc) (*entity.Rc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc.ID == "" {
		f.nextID++
		rc.ID = "id-" + strconv.Itoa(f.nextID)
	}
	cp := *rc
	f.records[rc.ID] = &cp
	return rc, nil
}

func (f *fakeRcRepo) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeRcRepo) CountByChassisNumber(ctx context.Context, n string) (int64, error) {
	return 0, nil
}
func (f *fakeRcRepo) CountByEngineNumber(ctx context.Context, n string) (int64, error) {
	return 0, nil
}
func (f *fakeRcRepo) FindAllActive(ctx context.Context) ([]*entity.Rc, error) { return nil, nil }
func (f *fakeRcRepo) SearchByOwnerName(ctx context.Context, n string) ([]*entity.Rc, error) {
	return nil, nil
}
func (f *fakeRcRepo) FindByRegistrationState(ctx context.Context, s string) ([]*entity.Rc, error) {
	return nil, nil
}
func (f *fakeRcRepo) FindByCreatedBetween(ctx context.Context, from, to time.Time) ([]*entity.Rc, error) {
	return nil, nil
}
func (f *fakeRcRepo) FindWithExpiredInsurance(ctx context.Context, asOf time.Time) ([]*entity.Rc, error) {
	return nil, nil
}
func (f *fakeRcRepo) FindWithExpiredPuc(ctx context.Context, asOf time.Time) ([]*entity.Rc, error) {
	return nil, nil
}
func (f *fakeRcRepo) SearchByRcNumberPattern(ctx context.Context, p string, o, l int) ([]*entity.Rc, int64, error) {
	return nil, 0, nil
}

func (f *fakeRcRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// fakeHistoryRepo is an in-memory append-only OwnershipHistoryRepository.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*entity.OwnershipHistory
}

func (f *fakeHistoryRepo) Save(ctx context.Context, h *entity.OwnershipHistory) (*entity.OwnershipHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.ID = "h-" + strconv.Itoa(len(f.entries)+1)
	f.entries = append(f.entries, h)
	return h, nil
}

func (f *fakeHistoryRepo) FindByRcID(ctx context.Context, rcID string) ([]*entity.OwnershipHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.OwnershipHistory
	for _, h := range f.entries {
		if h.RcID == rcID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// fakeMailer records dispatches and signals on a channel so tests can wait
// for the asynchronous sends.
type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 8)}
}

func (f *fakeMailer) SendRcCreated(ctx context.Context, to, name, rcNumber string) error {
	f.sent <- "created:" + to
	return nil
}

func (f *fakeMailer) SendOwnershipTransfer(ctx context.Context, to, name, rcNumber string) error {
	f.sent <- "transferred:" + to
	return nil
}

func validRc() *entity.Rc {
	return &entity.Rc{
		RcNumber:          "KA01AB1234",
		Owner:             entity.Owner{Name: "John Buyer"},
		VehicleInfo:       entity.VehicleInfo{Make: "Maruti", Model: "Swift"},
		ChassisNumber:     "CH123",
		EngineNumber:      "EN456",
		RegistrationState: "KA",
	}
}

func newTestService(rcRepo *fakeRcRepo, histRepo *fakeHistoryRepo, mailer *fakeMailer, policy UpdateMissingPolicy) *RcService {
	var m repository.MailerRepository
	if mailer != nil {
		m = mailer
	}
	return NewRcService(rcRepo, histRepo, m, nil, logger.NewNop(), policy)
}

func TestCreateValidationOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entity.Rc)
		field  string
	}{
		{"blank rcNumber", func(rc *entity.Rc) { rc.RcNumber = "  " }, "rcNumber"},
		{"blank owner name", func(rc *entity.Rc) { rc.Owner.Name = "" }, "owner.name"},
		{"blank state", func(rc *entity.Rc) { rc.RegistrationState = "" }, "registrationState"},
		{"missing make", func(rc *entity.Rc) { rc.VehicleInfo.Make = "" }, "vehicleInfo"},
		{"missing model", func(rc *entity.Rc) { rc.VehicleInfo.Model = "" }, "vehicleInfo"},
		{"blank chassis", func(rc *entity.Rc) { rc.ChassisNumber = "" }, "chassisNumber"},
		{"blank engine", func(rc *entity.Rc) { rc.EngineNumber = "" }, "engineNumber"},
		{"all missing reports rcNumber first", func(rc *entity.Rc) { *rc = entity.Rc{} }, "rcNumber"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRcRepo()
			svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyUpsert)

			rc := validRc()
			tc.mutate(rc)

			_, err := svc.Create(context.Background(), rc)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
			if repo.count() != 0 {
				t.Fatalf("store must be unchanged after validation failure, has %d records", repo.count())
			}
		})
	}
}

func TestCreateNormalizesOwnership(t *testing.T) {
	repo := newFakeRcRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyUpsert)

	rc := validRc()
	rc.OwnersCount = 99 // caller value must be overwritten
	saved, err := svc.Create(context.Background(), rc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if saved.PreviousOwners == nil || len(saved.PreviousOwners) != 0 {
		t.Fatalf("previousOwners must be normalized to empty, got %v", saved.PreviousOwners)
	}
	if saved.OwnersCount != 1 {
		t.Fatalf("ownersCount must be 1, got %d", saved.OwnersCount)
	}
	if saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Fatalf("createdAt/updatedAt must be set together, got %v / %v", saved.CreatedAt, saved.UpdatedAt)
	}

	rc2 := validRc()
	rc2.RcNumber = "KA01AB9999"
	rc2.PreviousOwners = []string{"A", "B"}
	saved2, err := svc.Create(context.Background(), rc2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if saved2.OwnersCount != 3 {
		t.Fatalf("ownersCount must equal 1+len(previousOwners), got %d", saved2.OwnersCount)
	}
}

func TestUpdateRecordsOwnershipTransfer(t *testing.T) {
	repo := newFakeRcRepo()
	hist := &fakeHistoryRepo{}
	svc := newTestService(repo, hist, nil, PolicyUpsert)

	saved, err := svc.Create(context.Background(), validRc())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Update without changing the name: no audit entry.
	same := validRc()
	same.Owner.Phone = "9876543210"
	if _, err := svc.Update(context.Background(), saved.ID, same); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if hist.count() != 0 {
		t.Fatalf("expected no audit entries for unchanged owner, got %d", hist.count())
	}

	// Change the owner name: exactly one entry with flag snapshots.
	stolen := true
	changed := validRc()
	changed.Owner.Name = "Jane Doe"
	changed.Stolen = &stolen
	if _, err := svc.Update(context.Background(), saved.ID, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if hist.count() != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", hist.count())
	}

	entries, _ := hist.FindByRcID(context.Background(), saved.ID)
	h := entries[0]
	if h.PreviousOwnerName != "John Buyer" || h.NewOwnerName != "Jane Doe" {
		t.Fatalf("unexpected names in audit entry: %q -> %q", h.PreviousOwnerName, h.NewOwnerName)
	}
	if h.StolenAtTransfer == nil || !*h.StolenAtTransfer {
		t.Fatalf("stolenAtTransfer must capture the post-update flag")
	}
	if h.SuspiciousAtTransfer != nil {
		t.Fatalf("suspiciousAtTransfer must stay absent when the flag is absent")
	}
	if h.RcNumber != saved.RcNumber {
		t.Fatalf("audit entry must snapshot the rcNumber")
	}

	// Case-sensitive comparison: same letters, different case is a transfer.
	upper := validRc()
	upper.Owner.Name = "JANE DOE"
	if _, err := svc.Update(context.Background(), saved.ID, upper); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if hist.count() != 2 {
		t.Fatalf("case change must count as a transfer, got %d entries", hist.count())
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	repo := newFakeRcRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyUpsert)

	saved, err := svc.Create(context.Background(), validRc())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalCreated := saved.CreatedAt

	in := validRc()
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) // caller value discarded
	updated, err := svc.Update(context.Background(), saved.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(originalCreated) {
		t.Fatalf("createdAt must come from the store, got %v want %v", updated.CreatedAt, originalCreated)
	}
	if !updated.UpdatedAt.After(originalCreated) && !updated.UpdatedAt.Equal(originalCreated) {
		t.Fatalf("updatedAt must be refreshed")
	}
}

func TestUpdateMissingIDPolicies(t *testing.T) {
	t.Run("upsert creates under the given id", func(t *testing.T) {
		repo := newFakeRcRepo()
		svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyUpsert)

		saved, err := svc.Update(context.Background(), "ghost-id", validRc())
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if saved.ID != "ghost-id" {
			t.Fatalf("expected record created under given id, got %q", saved.ID)
		}
		if repo.count() != 1 {
			t.Fatalf("expected one record, got %d", repo.count())
		}
	})

	t.Run("strict rejects the missing id", func(t *testing.T) {
		repo := newFakeRcRepo()
		svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyStrict)

		_, err := svc.Update(context.Background(), "ghost-id", validRc())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if repo.count() != 0 {
			t.Fatalf("strict update must not persist, got %d records", repo.count())
		}
	})
}

func TestDeleteIsIdempotentAndKeepsHistory(t *testing.T) {
	repo := newFakeRcRepo()
	hist := &fakeHistoryRepo{}
	svc := newTestService(repo, hist, nil, PolicyUpsert)

	saved, err := svc.Create(context.Background(), validRc())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	changed := validRc()
	changed.Owner.Name = "Jane Doe"
	if _, err := svc.Update(context.Background(), saved.ID, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := svc.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.count() != 0 {
		t.Fatalf("record must be gone, have %d", repo.count())
	}
	if hist.count() != 1 {
		t.Fatalf("audit trail must survive the delete, got %d entries", hist.count())
	}

	// Second delete of the same id and delete of an unknown id both succeed.
	if err := svc.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("repeat delete must be silent: %v", err)
	}
	if err := svc.Delete(context.Background(), "never-existed"); err != nil {
		t.Fatalf("delete of unknown id must be silent: %v", err)
	}
}

func TestNotificationsAreFireAndForget(t *testing.T) {
	repo := newFakeRcRepo()
	hist := &fakeHistoryRepo{}
	mailer := newFakeMailer()
	svc := newTestService(repo, hist, mailer, PolicyUpsert)

	rc := validRc()
	rc.Owner.Email = "john@example.com"
	saved, err := svc.Create(context.Background(), rc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case got := <-mailer.sent:
		if got != "created:john@example.com" {
			t.Fatalf("unexpected dispatch %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a created notification")
	}

	changed := validRc()
	changed.Owner.Name = "Jane Doe"
	changed.Owner.Email = "jane@example.com"
	if _, err := svc.Update(context.Background(), saved.ID, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	select {
	case got := <-mailer.sent:
		if got != "transferred:jane@example.com" {
			t.Fatalf("unexpected dispatch %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a transfer notification")
	}
}

func TestSearchByRcNumber(t *testing.T) {
	repo := newFakeRcRepo()
	svc := newTestService(repo, &fakeHistoryRepo{}, nil, PolicyUpsert)

	if _, err := svc.Create(context.Background(), validRc()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := svc.SearchByRcNumber(context.Background(), "KA01AB1234")
	if err != nil {
		t.Fatalf("SearchByRcNumber: %v", err)
	}
	if found.RcNumber != "KA01AB1234" {
		t.Fatalf("wrong record: %q", found.RcNumber)
	}

	if _, err := svc.SearchByRcNumber(context.Background(), "ZZ99XX0000"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
