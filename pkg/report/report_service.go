package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/internal/utils"
	"github.com/fintrackr/fintrackr/pkg/bill"
	"github.com/fintrackr/fintrackr/pkg/budget"
)

// dueSoonWindowDays is the lookahead used for the overview's due-soon counter.
const dueSoonWindowDays = 7

type ReportService interface {
	Overview(ctx context.Context) (Overview, error)
}

type ReportServiceImpl struct {
	billService   bill.BillService
	budgetService budget.BudgetService
	clock         utils.Clock
}

func NewReportServiceImpl(billService bill.BillService, budgetService budget.BudgetService, clock utils.Clock) *ReportServiceImpl {
	return &ReportServiceImpl{billService: billService, budgetService: budgetService, clock: clock}
}

func (s *ReportServiceImpl) Overview(ctx context.Context) (Overview, error) {
	today := s.clock.Today()

	bills, err := s.billService.GetAll(ctx, false)
	if err != nil {
		return Overview{}, err
	}

	outlooks := make([]BillOutlook, 0, len(bills))
	dueSoonCount := 0
	totalMonthly := decimal.Zero
	totalYearly := decimal.Zero
	for _, b := range bills {
		nextDue := bill.NextOccurrence(b, today)
		urgency := bill.ClassifyUrgency(b, nextDue, today)
		outlooks = append(outlooks, BillOutlook{
			Bill:        b,
			NextDue:     nextDue,
			Urgency:     urgency,
			MonthlyCost: bill.MonthlyCost(b.Amount, b.Cadence),
			YearlyCost:  bill.YearlyCost(b.Amount, b.Cadence),
		})
		if days := bill.DaysUntil(today, nextDue); urgency != bill.UrgencyExpired && days >= 0 && days <= dueSoonWindowDays {
			dueSoonCount++
		}
		totalMonthly = totalMonthly.Add(bill.MonthlyCost(b.Amount, b.Cadence))
		totalYearly = totalYearly.Add(bill.YearlyCost(b.Amount, b.Cadence))
	}

	overdue, err := s.billService.Overdue(ctx)
	if err != nil {
		return Overview{}, err
	}

	evaluations, err := s.budgetService.EvaluateAll(ctx)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Date:             today,
		Bills:            outlooks,
		DueSoonCount:     dueSoonCount,
		OverdueCount:     len(overdue),
		TotalMonthlyCost: totalMonthly,
		TotalYearlyCost:  totalYearly,
		Budgets:          evaluations,
	}, nil
}
