package budget

import (
	"testing"

	"github.com/shopspring/decimal"
)

func snapshot(limit, spent string, threshold int) Snapshot {
	return Snapshot{
		Limit:          decimal.RequireFromString(limit),
		AlertThreshold: threshold,
		Spent:          decimal.RequireFromString(spent),
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		snapshot        Snapshot
		wantRemaining   string
		wantPercentUsed float64
		wantStatus      Status
	}{
		{
			name:            "spending under the threshold is ok",
			snapshot:        snapshot("500", "200", 80),
			wantRemaining:   "300",
			wantPercentUsed: 40,
			wantStatus:      StatusOk,
		},
		{
			name:            "475 of 500 with threshold 80 is danger",
			snapshot:        snapshot("500", "475", 80),
			wantRemaining:   "25",
			wantPercentUsed: 95,
			wantStatus:      StatusDanger,
		},
		{
			name:            "exactly at the warning threshold",
			snapshot:        snapshot("500", "400", 80),
			wantRemaining:   "100",
			wantPercentUsed: 80,
			wantStatus:      StatusWarning,
		},
		{
			name:            "just under the warning threshold",
			snapshot:        snapshot("1000", "799", 80),
			wantRemaining:   "201",
			wantPercentUsed: 79.9,
			wantStatus:      StatusOk,
		},
		{
			name:            "danger at exactly 90 even with a higher threshold",
			snapshot:        snapshot("1000", "900", 95),
			wantRemaining:   "100",
			wantPercentUsed: 90,
			wantStatus:      StatusDanger,
		},
		{
			name:            "exactly at the limit is exceeded",
			snapshot:        snapshot("500", "500", 80),
			wantRemaining:   "0",
			wantPercentUsed: 100,
			wantStatus:      StatusExceeded,
		},
		{
			name:            "overspending yields a negative remaining",
			snapshot:        snapshot("500", "620", 80),
			wantRemaining:   "-120",
			wantPercentUsed: 124,
			wantStatus:      StatusExceeded,
		},
		{
			name:            "zero limit yields zero percent instead of dividing",
			snapshot:        snapshot("0", "50", 80),
			wantRemaining:   "-50",
			wantPercentUsed: 0,
			wantStatus:      StatusOk,
		},
		{
			name:            "division rounds half-up at four decimal places",
			snapshot:        snapshot("3", "1", 80),
			wantRemaining:   "2",
			wantPercentUsed: 33.33,
			wantStatus:      StatusOk,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.snapshot)
			if !got.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)) {
				t.Errorf("Evaluate().Remaining = %s, want %s", got.Remaining, tt.wantRemaining)
			}
			if got.PercentUsed != tt.wantPercentUsed {
				t.Errorf("Evaluate().PercentUsed = %v, want %v", got.PercentUsed, tt.wantPercentUsed)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Evaluate().Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestEvaluate_StatusNeverImprovesAsSpendingGrows(t *testing.T) {
	rank := map[Status]int{StatusOk: 0, StatusWarning: 1, StatusDanger: 2, StatusExceeded: 3}
	limit := decimal.RequireFromString("500")

	previous := StatusOk
	for spent := 0; spent <= 600; spent += 5 {
		status := Evaluate(Snapshot{
			Limit:          limit,
			AlertThreshold: 80,
			Spent:          decimal.NewFromInt(int64(spent)),
		}).Status
		if rank[status] < rank[previous] {
			t.Fatalf("status regressed from %s to %s at spent=%d", previous, status, spent)
		}
		previous = status
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{
		Name:           "Groceries",
		Limit:          decimal.RequireFromString("500"),
		AlertThreshold: 80,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(b Budget) Budget
		wantErr error
	}{
		{"negative limit", func(b Budget) Budget { b.Limit = decimal.RequireFromString("-1"); return b }, ErrNegativeLimit},
		{"threshold above 100", func(b Budget) Budget { b.AlertThreshold = 101; return b }, ErrInvalidThreshold},
		{"negative threshold", func(b Budget) Budget { b.AlertThreshold = -1; return b }, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
