package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackr/fintrackr/internal/utils"
	"github.com/fintrackr/fintrackr/pkg/bill"
	"github.com/fintrackr/fintrackr/pkg/budget"
)

func TestReportServiceImpl_Overview(t *testing.T) {
	// given: today is 2024-02-01
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)}
	rent := testBill("Rent", bill.CadenceMonthly, "1200", time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC))
	groceries := testBill("Groceries box", bill.CadenceWeekly, "10", time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC))
	missed := testBill("Missed insurance", bill.CadenceMonthly, "50", time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC))
	billService := &billServiceStub{
		bills:   []bill.Bill{rent, groceries, missed},
		overdue: []bill.Bill{missed},
	}
	budgetService := &budgetServiceStub{
		evaluations: []budget.BudgetEvaluation{
			{
				Budget: budget.Budget{Name: "Dining out", Limit: decimal.RequireFromString("500")},
				Spent:  decimal.RequireFromString("475"),
				Evaluation: budget.Evaluate(budget.Snapshot{
					Limit:          decimal.RequireFromString("500"),
					AlertThreshold: 80,
					Spent:          decimal.RequireFromString("475"),
				}),
			},
		},
	}
	service := NewReportServiceImpl(billService, budgetService, clock)

	// when
	overview, err := service.Overview(context.Background())

	// then
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), overview.Date)
	assert.Len(t, overview.Bills, 3)
	assert.Equal(t, 1, overview.OverdueCount)
	// only groceries (Feb 6) is within 7 days; the missed insurance catch-up
	// lands on Feb 10 and rent on Feb 28
	assert.Equal(t, 1, overview.DueSoonCount)
	// 1200 + 43.30 + 50 monthly, 14400 + 520 + 600 yearly
	assert.True(t, overview.TotalMonthlyCost.Equal(decimal.RequireFromString("1293.30")),
		"monthly = %s", overview.TotalMonthlyCost)
	assert.True(t, overview.TotalYearlyCost.Equal(decimal.RequireFromString("15520")),
		"yearly = %s", overview.TotalYearlyCost)
	assert.Len(t, overview.Budgets, 1)
	assert.Equal(t, budget.StatusDanger, overview.Budgets[0].Evaluation.Status)
}

func TestReportServiceImpl_Overview_EndedBillDoesNotCountAsDueSoon(t *testing.T) {
	// given: today is 2024-02-01 and the only bill ended in December
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)}
	ended := testBill("Ended subscription", bill.CadenceDaily, "5", time.Date(2023, time.December, 28, 0, 0, 0, 0, time.UTC))
	ended.EndDate = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	billService := &billServiceStub{bills: []bill.Bill{ended}}
	budgetService := &budgetServiceStub{}
	service := NewReportServiceImpl(billService, budgetService, clock)

	// when
	overview, err := service.Overview(context.Background())

	// then: the bill is still listed, as expired, but never counted as due soon
	assert.NoError(t, err)
	assert.Len(t, overview.Bills, 1)
	assert.Equal(t, bill.UrgencyExpired, overview.Bills[0].Urgency)
	assert.Equal(t, 0, overview.DueSoonCount)
}
