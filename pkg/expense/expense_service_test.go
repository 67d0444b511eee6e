package expense

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

var expenseRepoStub = NewStubExpenseRepo()

func setupExpenseService(t *testing.T) (ExpenseService, *event_bus.EventBus, context.Context, func()) {
	bus := event_bus.NewEventBus()
	service := NewExpenseServiceImpl(expenseRepoStub, bus)
	ctx := user.WithUser(context.Background(), user.User{
		Id:       1,
		Uid:      uuid.NewString(),
		Username: "test-user-1",
	})
	return service, bus, ctx, func() {
		t.Log("Teardown after test")
		expenseRepoStub.Cleanup()
	}
}

func TestExpenseServiceImpl_Create(t *testing.T) {
	service, bus, ctx, teardown := setupExpenseService(t)
	defer teardown()

	// given
	var published []event_bus.ExpenseRecorded
	event_bus.SubscribeTyped[event_bus.ExpenseRecorded](bus, event_bus.ExpenseRecordedEvent,
		func(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
			published = append(published, e.Data)
			return nil
		})
	expense := Expense{
		CategoryId:  uuid.New(),
		Amount:      decimal.RequireFromString("42.50"),
		Date:        time.Date(2024, time.February, 1, 18, 45, 0, 0, time.UTC),
		Description: "Weekly shop",
		Vendor:      "Corner store",
	}

	// when
	created, err := service.Create(ctx, expense)

	// then: the expense is stored with a normalized date and the event carries it
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Len(t, published, 1)
	assert.Equal(t, created.Id, published[0].ExpenseId)
	assert.True(t, published[0].Amount.Equal(decimal.RequireFromString("42.50")))
}

func TestExpenseServiceImpl_Create_RejectsInvalidInput(t *testing.T) {
	service, _, ctx, teardown := setupExpenseService(t)
	defer teardown()

	// given
	valid := Expense{
		CategoryId: uuid.New(),
		Amount:     decimal.RequireFromString("10"),
		Date:       time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	badAmount := valid
	badAmount.Amount = decimal.RequireFromString("-10")
	noCategory := valid
	noCategory.CategoryId = uuid.Nil
	noDate := valid
	noDate.Date = time.Time{}

	// when / then
	_, err := service.Create(ctx, badAmount)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	_, err = service.Create(ctx, noCategory)
	assert.ErrorIs(t, err, ErrMissingCategory)
	_, err = service.Create(ctx, noDate)
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestExpenseServiceImpl_SumByCategory(t *testing.T) {
	service, _, ctx, teardown := setupExpenseService(t)
	defer teardown()

	// given
	categoryId := uuid.New()
	amounts := []string{"100", "250.50", "124.50"}
	for _, amount := range amounts {
		_, err := service.Create(ctx, Expense{
			CategoryId: categoryId,
			Amount:     decimal.RequireFromString(amount),
			Date:       time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
	}
	_, err := service.Create(ctx, Expense{
		CategoryId: uuid.New(),
		Amount:     decimal.RequireFromString("999"),
		Date:       time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	// when
	sum, err := service.SumByCategory(ctx, categoryId, time.Time{}, time.Time{})

	// then
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("475")), "sum = %s", sum)
}

func TestExpenseServiceImpl_SumByCategory_RespectsDateWindow(t *testing.T) {
	service, _, ctx, teardown := setupExpenseService(t)
	defer teardown()

	// given
	categoryId := uuid.New()
	dates := []time.Time{
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		_, err := service.Create(ctx, Expense{
			CategoryId: categoryId,
			Amount:     decimal.RequireFromString("10"),
			Date:       date,
		})
		assert.NoError(t, err)
	}

	// when: February only, bounds inclusive
	sum, err := service.SumByCategory(ctx, categoryId,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC))

	// then
	assert.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("20")), "sum = %s", sum)
}

func TestExpenseServiceImpl_RequiresUser(t *testing.T) {
	service, _, _, teardown := setupExpenseService(t)
	defer teardown()

	_, err := service.GetAll(context.Background(), time.Time{}, time.Time{})
	assert.Error(t, err)
}
