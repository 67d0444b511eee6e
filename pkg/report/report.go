package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/pkg/bill"
	"github.com/fintrackr/fintrackr/pkg/budget"
)

// BillOutlook is a bill together with its projected schedule state.
type BillOutlook struct {
	Bill        bill.Bill
	NextDue     time.Time
	Urgency     bill.Urgency
	MonthlyCost decimal.Decimal
	YearlyCost  decimal.Decimal
}

// Overview is the combined picture of upcoming obligations and budget health
// for a single day. It is assembled on request and never stored.
type Overview struct {
	Date             time.Time
	Bills            []BillOutlook
	DueSoonCount     int
	OverdueCount     int
	TotalMonthlyCost decimal.Decimal
	TotalYearlyCost  decimal.Decimal
	Budgets          []budget.BudgetEvaluation
}
