package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/event_bus"
	"github.com/fintrackr/fintrackr/internal/utils"
	"github.com/fintrackr/fintrackr/pkg/user"
)

type ExpenseService interface {
	GetAll(ctx context.Context, from time.Time, to time.Time) ([]Expense, error)
	Get(ctx context.Context, id uuid.UUID) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// SumByCategory satisfies budget.SpentProvider so budgets can be
	// evaluated against recorded spending.
	SumByCategory(ctx context.Context, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error)
}

type ExpenseServiceImpl struct {
	repo ExpenseRepo
	bus  *event_bus.EventBus
}

func NewExpenseServiceImpl(repo ExpenseRepo, bus *event_bus.EventBus) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo, bus: bus}
}

func (s *ExpenseServiceImpl) GetAll(ctx context.Context, from time.Time, to time.Time) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, from, to)
}

func (s *ExpenseServiceImpl) Get(ctx context.Context, id uuid.UUID) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetById(ctx, userId, id)
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := expense.Validate(); err != nil {
		return Expense{}, err
	}
	expense.Id = uuid.New()
	expense.Date = utils.ToDate(expense.Date)
	if err := s.repo.Store(ctx, userId, expense); err != nil {
		return Expense{}, err
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseRecordedEvent, event_bus.ExpenseRecorded{
		ExpenseId:  expense.Id,
		CategoryId: expense.CategoryId,
		Amount:     expense.Amount,
		Date:       expense.Date,
	})); err != nil {
		// The expense is already stored; subscriber failures must not undo it.
		log.Errorf("expense.recorded event handling failed: %v", err)
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := expense.Validate(); err != nil {
		return false, err
	}
	expense.Date = utils.ToDate(expense.Date)

	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) or the user (%d) is not the owner", expense.Id, userId)
		return false, ErrExpenseNotFound
	}
	return true, nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrExpenseNotFound
	}
	return true, nil
}

func (s *ExpenseServiceImpl) SumByCategory(ctx context.Context, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SumByCategory(ctx, userId, categoryId, from, to)
}
