package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/pkg/user"
)

// SpentProvider supplies the amount already spent in a category over a date
// range. A zero "to" date means no upper bound.
type SpentProvider interface {
	SumByCategory(ctx context.Context, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error)
}

// BudgetEvaluation pairs a budget with the spent figure and the values derived
// from it for a single evaluation.
type BudgetEvaluation struct {
	Budget     Budget
	Spent      decimal.Decimal
	Evaluation Evaluation
}

type BudgetService interface {
	GetAll(ctx context.Context, includeInactive bool) ([]Budget, error)
	Get(ctx context.Context, id uuid.UUID) (Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	Update(ctx context.Context, budget Budget) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Evaluate(ctx context.Context, id uuid.UUID) (BudgetEvaluation, error)
	EvaluateAll(ctx context.Context) ([]BudgetEvaluation, error)
	// EvaluateForCategory evaluates the active budgets watching the given
	// category. Most categories have one budget; overlapping budgets are all
	// returned.
	EvaluateForCategory(ctx context.Context, categoryId uuid.UUID) ([]BudgetEvaluation, error)
}

type BudgetServiceImpl struct {
	repo  BudgetRepo
	spent SpentProvider
}

func NewBudgetServiceImpl(repo BudgetRepo, spent SpentProvider) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, spent: spent}
}

func (s *BudgetServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, includeInactive)
}

func (s *BudgetServiceImpl) Get(ctx context.Context, id uuid.UUID) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetById(ctx, userId, id)
}

func (s *BudgetServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := budget.Validate(); err != nil {
		return Budget{}, err
	}
	budget.Id = uuid.New()
	if err := s.repo.Store(ctx, userId, budget); err != nil {
		return Budget{}, err
	}
	return budget, nil
}

func (s *BudgetServiceImpl) Update(ctx context.Context, budget Budget) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := budget.Validate(); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, budget)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("budget not updated, probably because it does not exist (%s) or the user (%d) is not the owner", budget.Id, userId)
		return false, ErrBudgetNotFound
	}
	return true, nil
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, ErrBudgetNotFound
	}
	return true, nil
}

func (s *BudgetServiceImpl) Evaluate(ctx context.Context, id uuid.UUID) (BudgetEvaluation, error) {
	budget, err := s.Get(ctx, id)
	if err != nil {
		return BudgetEvaluation{}, err
	}
	return s.evaluate(ctx, budget)
}

func (s *BudgetServiceImpl) EvaluateAll(ctx context.Context) ([]BudgetEvaluation, error) {
	budgets, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	evaluations := make([]BudgetEvaluation, 0, len(budgets))
	for _, budget := range budgets {
		evaluation, err := s.evaluate(ctx, budget)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}
	return evaluations, nil
}

func (s *BudgetServiceImpl) EvaluateForCategory(ctx context.Context, categoryId uuid.UUID) ([]BudgetEvaluation, error) {
	budgets, err := s.GetAll(ctx, false)
	if err != nil {
		return nil, err
	}
	evaluations := make([]BudgetEvaluation, 0)
	for _, budget := range budgets {
		if budget.CategoryId != categoryId {
			continue
		}
		evaluation, err := s.evaluate(ctx, budget)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}
	return evaluations, nil
}

// evaluate sums expenses over the budget's own date window and derives the
// remaining amount, percent used and status from the sum.
func (s *BudgetServiceImpl) evaluate(ctx context.Context, budget Budget) (BudgetEvaluation, error) {
	spent, err := s.spent.SumByCategory(ctx, budget.CategoryId, budget.StartDate, budget.EndDate)
	if err != nil {
		return BudgetEvaluation{}, fmt.Errorf("could not sum spending for budget %s: %w", budget.Id, err)
	}
	return BudgetEvaluation{
		Budget: budget,
		Spent:  spent,
		Evaluation: Evaluate(Snapshot{
			Limit:          budget.Limit,
			AlertThreshold: budget.AlertThreshold,
			Spent:          spent,
		}),
	}, nil
}
