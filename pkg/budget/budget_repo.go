package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// Store stores a new Budget to the database
	Store(ctx context.Context, userId int, budget Budget) error
	GetAll(ctx context.Context, userId int, includeInactive bool) ([]Budget, error)
	GetById(ctx context.Context, userId int, budgetId uuid.UUID) (Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, budgetId uuid.UUID) (bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (bi *BudgetRepoImpl) Store(ctx context.Context, userId int, budget Budget) error {
	query := `INSERT INTO budget (
                    id,
                    category_id,
                    name,
                    amount_limit,
                    alert_threshold,
                    start_date,
                    end_date,
                    active,
                    user_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := bi.db.ExecContext(ctx, query,
		budget.Id,
		budget.CategoryId,
		budget.Name,
		budget.Limit.String(),
		budget.AlertThreshold,
		dateParam(budget.StartDate),
		dateParam(budget.EndDate),
		budget.Active,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

const budgetColumns = `id, category_id, name, amount_limit, alert_threshold, start_date, end_date, active`

func (bi *BudgetRepoImpl) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Budget, error) {
	activeWhereQuery := "AND budget.active = true"
	if includeInactive {
		activeWhereQuery = ""
	}
	query := fmt.Sprintf(`SELECT %s FROM budget WHERE budget.user_id = $1 %s ORDER BY name`, budgetColumns, activeWhereQuery)
	rows, err := bi.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (bi *BudgetRepoImpl) GetById(ctx context.Context, userId int, budgetId uuid.UUID) (Budget, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget WHERE id = $1 AND user_id = $2`, budgetColumns)
	row := bi.db.QueryRowContext(ctx, query, budgetId, userId)
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (bi *BudgetRepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET
                  category_id = $1,
                  name = $2,
                  amount_limit = $3,
                  alert_threshold = $4,
                  start_date = $5,
                  end_date = $6,
                  active = $7
              WHERE id = $8 AND user_id = $9`
	result, err := bi.db.ExecContext(ctx, query,
		budget.CategoryId,
		budget.Name,
		budget.Limit.String(),
		budget.AlertThreshold,
		dateParam(budget.StartDate),
		dateParam(budget.EndDate),
		budget.Active,
		budget.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (bi *BudgetRepoImpl) Delete(ctx context.Context, userId int, budgetId uuid.UUID) (bool, error) {
	result, err := bi.db.ExecContext(ctx, "DELETE FROM budget WHERE id = $1 AND user_id = $2", budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (Budget, error) {
	var budget Budget
	var limit string
	var startDate, endDate sql.NullTime
	if err := row.Scan(
		&budget.Id,
		&budget.CategoryId,
		&budget.Name,
		&limit,
		&budget.AlertThreshold,
		&startDate,
		&endDate,
		&budget.Active,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Budget{}, err
		}
		return Budget{}, fmt.Errorf("could not scan budget: %w", err)
	}
	parsed, err := decimal.NewFromString(limit)
	if err != nil {
		return Budget{}, fmt.Errorf("could not parse budget limit: %w", err)
	}
	budget.Limit = parsed
	if startDate.Valid {
		budget.StartDate = startDate.Time
	}
	if endDate.Valid {
		budget.EndDate = endDate.Time
	}
	return budget, nil
}

func dateParam(date time.Time) any {
	if date.IsZero() {
		return nil
	}
	return date.Format("2006-01-02")
}
