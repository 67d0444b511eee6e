package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/pkg/bill"
	"github.com/fintrackr/fintrackr/pkg/budget"
)

type billServiceStub struct {
	bill.BillService
	bills   []bill.Bill
	overdue []bill.Bill
}

func (s *billServiceStub) GetAll(ctx context.Context, includeInactive bool) ([]bill.Bill, error) {
	return s.bills, nil
}

func (s *billServiceStub) Overdue(ctx context.Context) ([]bill.Bill, error) {
	return s.overdue, nil
}

func (s *billServiceStub) TotalMonthlyCost(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range s.bills {
		total = total.Add(bill.MonthlyCost(b.Amount, b.Cadence))
	}
	return total, nil
}

type budgetServiceStub struct {
	budget.BudgetService
	evaluations []budget.BudgetEvaluation
}

func (s *budgetServiceStub) EvaluateAll(ctx context.Context) ([]budget.BudgetEvaluation, error) {
	return s.evaluations, nil
}

func testBill(name string, cadence bill.Cadence, amount string, lastPaid time.Time) bill.Bill {
	return bill.Bill{
		Id:              uuid.New(),
		Name:            name,
		Amount:          decimal.RequireFromString(amount),
		Cadence:         cadence,
		LastPaymentDate: lastPaid,
		ReminderDays:    3,
		Active:          true,
	}
}
