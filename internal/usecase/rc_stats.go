package usecase

import (
	"context"
	"sort"
	"time"

	"rcverify-service/internal/domain/entity"
)

// Stats is the aggregate view over the full record set. It is recomputed
// on every call; nothing is cached.
type Stats struct {
	Total                int             `json:"total"`
	ActiveCount          int             `json:"activeCount"`
	StolenCount          int             `json:"stolenCount"`
	SuspiciousCount      int             `json:"suspiciousCount"`
	ByState              map[string]int  `json:"byState"`
	MonthlyVerifications []MonthlyBucket `json:"monthlyVerifications"`
}

// MonthlyBucket is one yyyy-MM creation-month count.
type MonthlyBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// GetStats loads the full record set and aggregates it in loc.
func (s *RcService) GetStats(ctx context.Context, loc *time.Location) (*Stats, error) {
	all, err := s.rcRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(all, loc), nil
}

// ComputeStats derives the summary counters and month buckets from a
// snapshot of records. Months are keyed on createdAt localized to loc and
// emitted in ascending order.
func ComputeStats(records []*entity.Rc, loc *time.Location) *Stats {
	if loc == nil {
		loc = time.Local
	}

	stats := &Stats{
		Total:                len(records),
		ByState:              make(map[string]int),
		MonthlyVerifications: []MonthlyBucket{},
	}

	monthly := make(map[string]int)
	for _, rc := range records {
		if rc.RegistrationInfo.Active {
			stats.ActiveCount++
		}
		if rc.IsStolen() {
			stats.StolenCount++
		}
		if rc.IsSuspicious() {
			stats.SuspiciousCount++
		}
		if rc.RegistrationState != "" {
			stats.ByState[rc.RegistrationState]++
		}
		if !rc.CreatedAt.IsZero() {
			monthly[rc.CreatedAt.In(loc).Format("2006-01")]++
		}
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		stats.MonthlyVerifications = append(stats.MonthlyVerifications, MonthlyBucket{
			Month: m,
			Count: monthly[m],
		})
	}

	return stats
}
