package usecase

import (
	"context"

	"rcverify-service/internal/domain/entity"
	"rcverify-service/pkg/utils"
)

// FilterCriteria holds the optional predicates for GetFiltered. Blank
// strings mean "not applied"; nil booleans mean "not applied". The boolean
// predicates compare against the stored flag exactly, so an absent flag
// never matches stolen=false.
type FilterCriteria struct {
	State      string
	Stolen     *bool
	Suspicious *bool
	Make       string
	OwnerName  string
}

// DefaultPageSize is used when the requested size is below 1.
const DefaultPageSize = 10

// Page is one slice of a filtered record list.
type Page struct {
	Items      []*entity.Rc `json:"items"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	Total      int          `json:"total"`
	TotalPages int          `json:"totalPages"`
}

// GetFiltered loads the full record set and applies the criteria in memory.
// The read path deliberately does not push these predicates into Mongo; the
// filtered views are an on-demand read model over a point-in-time snapshot.
func (s *RcService) GetFiltered(ctx context.Context, c FilterCriteria) ([]*entity.Rc, error) {
	all, err := s.rcRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecords(all, c), nil
}

// GetFilteredPage returns one page of the filtered record set.
func (s *RcService) GetFilteredPage(ctx context.Context, c FilterCriteria, page, size int) (*Page, error) {
	filtered, err := s.GetFiltered(ctx, c)
	if err != nil {
		return nil, err
	}
	return Paginate(filtered, page, size), nil
}

// FilterRecords returns the subset of records matching every provided
// criterion. String criteria match by case-insensitive substring; a record
// missing the target field fails that criterion.
func FilterRecords(records []*entity.Rc, c FilterCriteria) []*entity.Rc {
	out := make([]*entity.Rc, 0, len(records))
	for _, rc := range records {
		if matches(rc, c) {
			out = append(out, rc)
		}
	}
	return out
}

func matches(rc *entity.Rc, c FilterCriteria) bool {
	if !utils.IsBlank(c.State) {
		if rc.RegistrationState == "" || !utils.ContainsFold(rc.RegistrationState, c.State) {
			return false
		}
	}
	if c.Stolen != nil {
		if rc.Stolen == nil || *rc.Stolen != *c.Stolen {
			return false
		}
	}
	if c.Suspicious != nil {
		if rc.Suspicious == nil || *rc.Suspicious != *c.Suspicious {
			return false
		}
	}
	if !utils.IsBlank(c.Make) {
		if rc.VehicleInfo.Make == "" || !utils.ContainsFold(rc.VehicleInfo.Make, c.Make) {
			return false
		}
	}
	if !utils.IsBlank(c.OwnerName) {
		if rc.Owner.Name == "" || !utils.ContainsFold(rc.Owner.Name, c.OwnerName) {
			return false
		}
	}
	return true
}

// Paginate slices the list into the requested page. page is clamped to 0
// and size below 1 falls back to DefaultPageSize.
func Paginate(records []*entity.Rc, page, size int) *Page {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(records)
	from := page * size
	if from > total {
		from = total
	}
	to := from + size
	if to > total {
		to = total
	}

	totalPages := (total + size - 1) / size

	return &Page{
		Items:      records[from:to],
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}
