package entity

// Fraud report severities and results.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	ResultVerified   = "verified"
	ResultConcerns   = "concerns"
	ResultSuspicious = "suspicious"
)

// FraudCheck is one finding in a fraud report.
type FraudCheck struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// FraudReport bundles the checks for a single Rc. FraudScore carries no
// real scoring model; it is a static weight derived from the flags.
type FraudReport struct {
	FraudChecks []FraudCheck `json:"fraudChecks"`
	FraudScore  float64      `json:"fraudScore"`
	Result      string       `json:"result"`
}
