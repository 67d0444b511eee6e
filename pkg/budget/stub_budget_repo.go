package budget

import (
	"context"

	"github.com/google/uuid"
)

type StubBudgetRepo struct {
	data map[uuid.UUID]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[uuid.UUID]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) error {
	s.data[budget.Id] = budget
	return nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		if budget.Active || includeInactive {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

func (s *StubBudgetRepo) GetById(ctx context.Context, userId int, budgetId uuid.UUID) (Budget, error) {
	budget, ok := s.data[budgetId]
	if !ok {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	if _, ok := s.data[budget.Id]; !ok {
		return false, nil
	}
	s.data[budget.Id] = budget
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, budgetId uuid.UUID) (bool, error) {
	if _, ok := s.data[budgetId]; !ok {
		return false, nil
	}
	delete(s.data, budgetId)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[uuid.UUID]Budget{}
}
