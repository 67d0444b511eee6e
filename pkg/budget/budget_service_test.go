package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fintrackr/fintrackr/internal/event_bus"
	"github.com/fintrackr/fintrackr/pkg/user"
)

// stubSpentProvider returns a fixed spent figure per category.
type stubSpentProvider struct {
	spent map[uuid.UUID]decimal.Decimal
}

func (s *stubSpentProvider) SumByCategory(ctx context.Context, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error) {
	amount, ok := s.spent[categoryId]
	if !ok {
		return decimal.Zero, nil
	}
	return amount, nil
}

var budgetRepoStub = NewStubBudgetRepo()

func setupBudgetService(t *testing.T) (BudgetService, *stubSpentProvider, context.Context, func()) {
	spent := &stubSpentProvider{spent: map[uuid.UUID]decimal.Decimal{}}
	service := NewBudgetServiceImpl(budgetRepoStub, spent)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	return service, spent, ctx, func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func TestBudgetServiceImpl_Create(t *testing.T) {
	service, _, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	budget := Budget{
		CategoryId:     uuid.New(),
		Name:           "Groceries",
		Limit:          decimal.RequireFromString("500"),
		AlertThreshold: 80,
		Active:         true,
	}

	// when
	created, err := service.Create(ctx, budget)

	// then
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)

	stored, err := service.Get(ctx, created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Groceries", stored.Name)
	assert.True(t, stored.Limit.Equal(decimal.RequireFromString("500")))
}

func TestBudgetServiceImpl_Create_RejectsInvalidInput(t *testing.T) {
	service, _, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	valid := Budget{
		Name:           "Groceries",
		Limit:          decimal.RequireFromString("500"),
		AlertThreshold: 80,
		Active:         true,
	}
	badLimit := valid
	badLimit.Limit = decimal.RequireFromString("-500")
	badThreshold := valid
	badThreshold.AlertThreshold = 120

	// when / then
	_, err := service.Create(ctx, badLimit)
	assert.ErrorIs(t, err, ErrNegativeLimit)
	_, err = service.Create(ctx, badThreshold)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestBudgetServiceImpl_Evaluate(t *testing.T) {
	service, spent, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	categoryId := uuid.New()
	created, err := service.Create(ctx, Budget{
		CategoryId:     categoryId,
		Name:           "Dining out",
		Limit:          decimal.RequireFromString("500"),
		AlertThreshold: 80,
		Active:         true,
	})
	assert.NoError(t, err)
	spent.spent[categoryId] = decimal.RequireFromString("475")

	// when
	evaluation, err := service.Evaluate(ctx, created.Id)

	// then
	assert.NoError(t, err)
	assert.True(t, evaluation.Spent.Equal(decimal.RequireFromString("475")))
	assert.True(t, evaluation.Evaluation.Remaining.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, 95.0, evaluation.Evaluation.PercentUsed)
	assert.Equal(t, StatusDanger, evaluation.Evaluation.Status)
}

func TestBudgetServiceImpl_EvaluateAll(t *testing.T) {
	service, spent, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	groceriesCategory := uuid.New()
	transportCategory := uuid.New()
	_, err := service.Create(ctx, Budget{
		CategoryId: groceriesCategory,
		Name:       "Groceries",
		Limit:      decimal.RequireFromString("400"),
		Active:     true,
	})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Budget{
		CategoryId: transportCategory,
		Name:       "Transport",
		Limit:      decimal.RequireFromString("100"),
		Active:     true,
	})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Budget{
		CategoryId: uuid.New(),
		Name:       "Retired budget",
		Limit:      decimal.RequireFromString("50"),
		Active:     false,
	})
	assert.NoError(t, err)
	spent.spent[groceriesCategory] = decimal.RequireFromString("100")
	spent.spent[transportCategory] = decimal.RequireFromString("110")

	// when
	evaluations, err := service.EvaluateAll(ctx)

	// then: inactive budgets are not evaluated
	assert.NoError(t, err)
	assert.Len(t, evaluations, 2)
	byName := map[string]BudgetEvaluation{}
	for _, evaluation := range evaluations {
		byName[evaluation.Budget.Name] = evaluation
	}
	assert.Equal(t, StatusOk, byName["Groceries"].Evaluation.Status)
	assert.Equal(t, StatusExceeded, byName["Transport"].Evaluation.Status)
}

func TestBudgetServiceImpl_EvaluateForCategory(t *testing.T) {
	service, spent, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	categoryId := uuid.New()
	_, err := service.Create(ctx, Budget{
		CategoryId: categoryId,
		Name:       "Watched",
		Limit:      decimal.RequireFromString("200"),
		Active:     true,
	})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Budget{
		CategoryId: uuid.New(),
		Name:       "Unrelated",
		Limit:      decimal.RequireFromString("200"),
		Active:     true,
	})
	assert.NoError(t, err)
	spent.spent[categoryId] = decimal.RequireFromString("150")

	// when
	evaluations, err := service.EvaluateForCategory(ctx, categoryId)

	// then
	assert.NoError(t, err)
	assert.Len(t, evaluations, 1)
	assert.Equal(t, "Watched", evaluations[0].Budget.Name)
	assert.True(t, evaluations[0].Spent.Equal(decimal.RequireFromString("150")))
}

func TestAlertWatcher_EvaluatesOnExpenseRecorded(t *testing.T) {
	service, spent, ctx, teardown := setupBudgetService(t)
	defer teardown()

	// given
	categoryId := uuid.New()
	_, err := service.Create(ctx, Budget{
		CategoryId:     categoryId,
		Name:           "Groceries",
		Limit:          decimal.RequireFromString("500"),
		AlertThreshold: 80,
		Active:         true,
	})
	assert.NoError(t, err)
	spent.spent[categoryId] = decimal.RequireFromString("475")

	bus := event_bus.NewEventBus()
	watcher := NewAlertWatcher(service, bus)
	defer watcher.Close()

	// when
	err = bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseRecordedEvent, event_bus.ExpenseRecorded{
		ExpenseId:  uuid.New(),
		CategoryId: categoryId,
		Amount:     decimal.RequireFromString("25"),
		Date:       time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}))

	// then: the watcher only logs, so the event must come back clean
	assert.NoError(t, err)
}

func TestBudgetServiceImpl_RequiresUser(t *testing.T) {
	service, _, _, teardown := setupBudgetService(t)
	defer teardown()

	_, err := service.GetAll(context.Background(), false)
	assert.Error(t, err)
}
