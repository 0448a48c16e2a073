package usecase

import (
	"testing"
	"time"

	"rcverify-service/internal/domain/entity"
)

func TestComputeStatsEmptySet(t *testing.T) {
	stats := ComputeStats(nil, time.UTC)
	if stats.Total != 0 || stats.ActiveCount != 0 || stats.StolenCount != 0 || stats.SuspiciousCount != 0 {
		t.Fatalf("expected zeroed counters, got %+v", stats)
	}
	if len(stats.ByState) != 0 {
		t.Fatalf("expected empty byState, got %v", stats.ByState)
	}
	if len(stats.MonthlyVerifications) != 0 {
		t.Fatalf("expected empty monthly buckets, got %v", stats.MonthlyVerifications)
	}
}

func TestComputeStatsCounters(t *testing.T) {
	records := []*entity.Rc{
		{
			RegistrationState: "KA",
			RegistrationInfo:  entity.RegistrationInfo{Active: true},
			Stolen:            boolPtr(true),
			CreatedAt:         time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			RegistrationState: "KA",
			RegistrationInfo:  entity.RegistrationInfo{Active: true},
			Suspicious:        boolPtr(true),
			CreatedAt:         time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			RegistrationState: "MH",
			Stolen:            boolPtr(false),
			CreatedAt:         time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			// Blank state stays out of byState; zero createdAt out of monthly.
			RegistrationState: "",
		},
	}

	stats := ComputeStats(records, time.UTC)

	if stats.Total != 4 {
		t.Fatalf("total: got %d", stats.Total)
	}
	if stats.ActiveCount != 2 {
		t.Fatalf("activeCount: got %d", stats.ActiveCount)
	}
	if stats.StolenCount != 1 {
		t.Fatalf("stolenCount must only count exact true, got %d", stats.StolenCount)
	}
	if stats.SuspiciousCount != 1 {
		t.Fatalf("suspiciousCount: got %d", stats.SuspiciousCount)
	}
	if stats.ByState["KA"] != 2 || stats.ByState["MH"] != 1 || len(stats.ByState) != 2 {
		t.Fatalf("byState: got %v", stats.ByState)
	}

	want := []MonthlyBucket{
		{Month: "2025-01", Count: 1},
		{Month: "2025-03", Count: 2},
	}
	if len(stats.MonthlyVerifications) != len(want) {
		t.Fatalf("monthly buckets: got %v", stats.MonthlyVerifications)
	}
	for i, b := range want {
		if stats.MonthlyVerifications[i] != b {
			t.Fatalf("bucket %d: got %+v, want %+v", i, stats.MonthlyVerifications[i], b)
		}
	}
}

func TestComputeStatsLocalizesMonths(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2025-01-31 20:00 UTC is already February in IST.
	records := []*entity.Rc{
		{RegistrationState: "KA", CreatedAt: time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC)},
	}

	utcStats := ComputeStats(records, time.UTC)
	if utcStats.MonthlyVerifications[0].Month != "2025-01" {
		t.Fatalf("UTC bucket: got %s", utcStats.MonthlyVerifications[0].Month)
	}

	istStats := ComputeStats(records, kolkata)
	if istStats.MonthlyVerifications[0].Month != "2025-02" {
		t.Fatalf("IST bucket: got %s", istStats.MonthlyVerifications[0].Month)
	}
}
