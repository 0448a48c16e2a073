package usecase

import (
	"testing"

	"rcverify-service/internal/domain/entity"
)

func TestBuildFraudReport(t *testing.T) {
	t.Run("clean record verifies", func(t *testing.T) {
		report := BuildFraudReport(&entity.Rc{RcNumber: "KA01AB1234", OwnersCount: 1})
		if report.Result != entity.ResultVerified {
			t.Fatalf("expected verified, got %s", report.Result)
		}
		if len(report.FraudChecks) != 0 || report.FraudScore != 0 {
			t.Fatalf("expected no checks, got %+v", report)
		}
	})

	t.Run("stolen flag dominates", func(t *testing.T) {
		report := BuildFraudReport(&entity.Rc{
			RcNumber: "KA01AB1234",
			Stolen:   boolPtr(true),
		})
		if report.Result != entity.ResultSuspicious {
			t.Fatalf("expected suspicious, got %s", report.Result)
		}
		if len(report.FraudChecks) != 1 || report.FraudChecks[0].Severity != entity.SeverityHigh {
			t.Fatalf("expected one high-severity check, got %+v", report.FraudChecks)
		}
	})

	t.Run("suspicious flag raises concerns", func(t *testing.T) {
		report := BuildFraudReport(&entity.Rc{
			RcNumber:   "KA01AB1234",
			Suspicious: boolPtr(true),
		})
		if report.Result != entity.ResultConcerns {
			t.Fatalf("expected concerns, got %s", report.Result)
		}
	})

	t.Run("ownership churn alone stays verified", func(t *testing.T) {
		report := BuildFraudReport(&entity.Rc{RcNumber: "KA01AB1234", OwnersCount: 5})
		if report.Result != entity.ResultVerified {
			t.Fatalf("expected verified, got %s", report.Result)
		}
		if len(report.FraudChecks) != 1 || report.FraudChecks[0].Type != "ownership_churn" {
			t.Fatalf("expected the churn check, got %+v", report.FraudChecks)
		}
	})
}
