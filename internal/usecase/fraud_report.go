package usecase

import (
	"context"
	"fmt"

	"rcverify-service/internal/domain/entity"
)

// Static weights for the flag-derived fraud report. There is no scoring
// model behind these; the report only restates the stored flags and
// ownership churn for the inspection front end.
const (
	stolenWeight     = 60
	suspiciousWeight = 30
	churnWeight      = 10
	churnThreshold   = 3
)

// GetFraudReport assembles a fraud report for one record.
func (s *RcService) GetFraudReport(ctx context.Context, id string) (*entity.FraudReport, error) {
	rc, err := s.rcRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildFraudReport(rc), nil
}

// BuildFraudReport derives the checks and the static score from the flags.
func BuildFraudReport(rc *entity.Rc) *entity.FraudReport {
	report := &entity.FraudReport{
		FraudChecks: []entity.FraudCheck{},
		Result:      entity.ResultVerified,
	}

	if rc.IsStolen() {
		report.FraudChecks = append(report.FraudChecks, entity.FraudCheck{
			Type:     "stolen_flag",
			Message:  fmt.Sprintf("RC %s is flagged as stolen", rc.RcNumber),
			Severity: entity.SeverityHigh,
		})
		report.FraudScore += stolenWeight
	}
	if rc.IsSuspicious() {
		report.FraudChecks = append(report.FraudChecks, entity.FraudCheck{
			Type:     "suspicious_flag",
			Message:  fmt.Sprintf("RC %s is flagged as suspicious", rc.RcNumber),
			Severity: entity.SeverityMedium,
		})
		report.FraudScore += suspiciousWeight
	}
	if rc.OwnersCount > churnThreshold {
		report.FraudChecks = append(report.FraudChecks, entity.FraudCheck{
			Type:     "ownership_churn",
			Message:  fmt.Sprintf("Vehicle changed hands %d times", rc.OwnersCount),
			Severity: entity.SeverityLow,
		})
		report.FraudScore += churnWeight
	}

	switch {
	case report.FraudScore >= stolenWeight:
		report.Result = entity.ResultSuspicious
	case report.FraudScore >= suspiciousWeight:
		report.Result = entity.ResultConcerns
	}

	return report
}
