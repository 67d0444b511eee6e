package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StubExpenseRepo struct {
	data map[uuid.UUID]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[uuid.UUID]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, userId int, expense Expense) error {
	s.data[expense.Id] = expense
	return nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		if inRange(expense.Date, from, to) {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (s *StubExpenseRepo) GetById(ctx context.Context, userId int, expenseId uuid.UUID) (Expense, error) {
	expense, ok := s.data[expenseId]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.data[expense.Id]; !ok {
		return false, nil
	}
	s.data[expense.Id] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, userId int, expenseId uuid.UUID) (bool, error) {
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *StubExpenseRepo) SumByCategory(ctx context.Context, userId int, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, expense := range s.data {
		if expense.CategoryId == categoryId && inRange(expense.Date, from, to) {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[uuid.UUID]Expense{}
}

func inRange(date time.Time, from time.Time, to time.Time) bool {
	if !from.IsZero() && date.Before(from) {
		return false
	}
	if !to.IsZero() && date.After(to) {
		return false
	}
	return true
}
