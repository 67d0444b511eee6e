package budget

import (
	"github.com/shopspring/decimal"
)

// Status classifies how close a budget is to, or past, its limit.
type Status string

const (
	StatusOk       Status = "ok"
	StatusWarning  Status = "warning"
	StatusDanger   Status = "danger"
	StatusExceeded Status = "exceeded"
)

// Snapshot is the limit/threshold/spent triple a budget is evaluated from.
// It carries no identity; callers build one per evaluation and discard it.
type Snapshot struct {
	Limit          decimal.Decimal
	AlertThreshold int
	Spent          decimal.Decimal
}

// Evaluation holds the values derived from a Snapshot. Nothing here is ever
// stored; it is recomputed from the snapshot on every evaluation.
type Evaluation struct {
	// Remaining may be negative: over-budget is representable, not clamped.
	Remaining   decimal.Decimal
	PercentUsed float64
	Status      Status
}

var hundred = decimal.NewFromInt(100)

// Evaluate computes remaining headroom, percent used, and the status tier.
// The division is rounded half-up to four decimal places before the
// percentage is taken; a zero limit yields zero percent rather than a
// division error.
func Evaluate(s Snapshot) Evaluation {
	remaining := s.Limit.Sub(s.Spent)

	percentUsed := 0.0
	if s.Limit.IsPositive() {
		percentUsed = s.Spent.DivRound(s.Limit, 4).Mul(hundred).InexactFloat64()
	}

	return Evaluation{
		Remaining:   remaining,
		PercentUsed: percentUsed,
		Status:      statusFor(percentUsed, s.AlertThreshold),
	}
}

func statusFor(percentUsed float64, alertThreshold int) Status {
	switch {
	case percentUsed >= 100:
		return StatusExceeded
	// The danger tier is fixed at 90 regardless of the configured threshold;
	// only the warning tier is caller-tunable.
	case percentUsed >= 90:
		return StatusDanger
	case percentUsed >= float64(alertThreshold):
		return StatusWarning
	default:
		return StatusOk
	}
}
