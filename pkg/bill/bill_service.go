package bill

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/event_bus"
	"github.com/fintrackr/fintrackr/internal/utils"
	"github.com/fintrackr/fintrackr/pkg/user"
)

type BillService interface {
	GetAll(ctx context.Context, includeInactive bool) ([]Bill, error)
	Get(ctx context.Context, id uuid.UUID) (Bill, error)
	Create(ctx context.Context, bill Bill) (Bill, error)
	Update(ctx context.Context, bill Bill) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// MarkPaid records a payment and publishes a bill.paid event. The next
	// occurrence is not stored; it is recomputed from the new payment date on
	// every read.
	MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) (Bill, error)
	DueSoon(ctx context.Context, daysAhead int) ([]Bill, error)
	Overdue(ctx context.Context) ([]Bill, error)
	TotalMonthlyCost(ctx context.Context) (decimal.Decimal, error)
	TotalYearlyCost(ctx context.Context) (decimal.Decimal, error)
}

type BillServiceImpl struct {
	repo  BillRepo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewBillServiceImpl(repo BillRepo, bus *event_bus.EventBus, clock utils.Clock) *BillServiceImpl {
	return &BillServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *BillServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, includeInactive)
}

func (s *BillServiceImpl) Get(ctx context.Context, id uuid.UUID) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetById(ctx, userId, id)
}

func (s *BillServiceImpl) Create(ctx context.Context, bill Bill) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := bill.Validate(); err != nil {
		return Bill{}, err
	}
	bill.Id = uuid.New()
	if err := s.repo.Store(ctx, userId, bill); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func (s *BillServiceImpl) Update(ctx context.Context, bill Bill) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := bill.Validate(); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, bill)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("bill not updated, probably because it does not exist (%s) or the user (%d) is not the owner", bill.Id, userId)
		return false, ErrBillNotFound
	}
	return true, nil
}

func (s *BillServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("bill not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrBillNotFound
	}
	return true, nil
}

func (s *BillServiceImpl) MarkPaid(ctx context.Context, id uuid.UUID, paidOn time.Time) (Bill, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Bill{}, fmt.Errorf("failed to get current user: %w", err)
	}
	bill, err := s.repo.GetById(ctx, userId, id)
	if err != nil {
		return Bill{}, err
	}
	if paidOn.IsZero() {
		paidOn = s.clock.Today()
	}
	paidOn = utils.ToDate(paidOn)

	updated, err := s.repo.UpdateLastPayment(ctx, userId, id, paidOn)
	if err != nil {
		return Bill{}, err
	}
	if !updated {
		return Bill{}, ErrBillNotFound
	}
	bill.LastPaymentDate = paidOn

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.BillPaidEvent, event_bus.BillPaid{
		BillId: bill.Id,
		PaidOn: paidOn,
		Amount: bill.Amount,
	})); err != nil {
		// Payment is already recorded; subscriber failures must not undo it.
		log.Errorf("bill.paid event handling failed: %v", err)
	}
	return bill, nil
}

// DueSoon returns active, not yet ended bills whose projected next occurrence
// falls within daysAhead days from today (inclusive, counting today), closest
// due date first.
func (s *BillServiceImpl) DueSoon(ctx context.Context, daysAhead int) ([]Bill, error) {
	bills, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()

	dueSoon := make([]datedBill, 0)
	for _, b := range bills {
		if expired(b, today) {
			continue
		}
		nextDue := NextOccurrence(b, today)
		if days := DaysUntil(today, nextDue); days >= 0 && days <= daysAhead {
			dueSoon = append(dueSoon, datedBill{b, nextDue})
		}
	}
	return sortByDueDate(dueSoon), nil
}

// Overdue returns active, not yet ended bills with a missed occurrence: the
// first cadence step after the last payment (or start) is already in the
// past. Projection itself always fast-forwards to a future date, so this
// check looks at the first step only. Results come oldest missed date first.
func (s *BillServiceImpl) Overdue(ctx context.Context) ([]Bill, error) {
	bills, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	today := s.clock.Today()

	overdue := make([]datedBill, 0)
	for _, b := range bills {
		if b.LastPaymentDate.IsZero() || expired(b, today) {
			continue
		}
		firstDue := step(utils.ToDate(b.LastPaymentDate), b.Cadence)
		if b.Cadence == CadenceMonthly && b.DueDay >= 1 && b.DueDay <= 28 {
			firstDue = time.Date(firstDue.Year(), firstDue.Month(), b.DueDay, 0, 0, 0, 0, time.UTC)
		}
		if firstDue.Before(today) {
			overdue = append(overdue, datedBill{b, firstDue})
		}
	}
	return sortByDueDate(overdue), nil
}

type datedBill struct {
	bill    Bill
	dueDate time.Time
}

func sortByDueDate(dated []datedBill) []Bill {
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].dueDate.Before(dated[j].dueDate)
	})
	bills := make([]Bill, 0, len(dated))
	for _, d := range dated {
		bills = append(bills, d.bill)
	}
	return bills
}

func (s *BillServiceImpl) TotalMonthlyCost(ctx context.Context) (decimal.Decimal, error) {
	return s.totalCost(ctx, MonthlyCost)
}

func (s *BillServiceImpl) TotalYearlyCost(ctx context.Context) (decimal.Decimal, error) {
	return s.totalCost(ctx, YearlyCost)
}

func (s *BillServiceImpl) totalCost(ctx context.Context, normalize func(decimal.Decimal, Cadence) decimal.Decimal) (decimal.Decimal, error) {
	bills, err := s.GetAll(ctx, false)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(normalize(b.Amount, b.Cadence))
	}
	return total, nil
}
