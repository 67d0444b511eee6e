package expense

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

type ExpenseRepo interface {
	Store(ctx context.Context, userId int, expense Expense) error
	// GetAll returns expenses dated within [from, to]. A zero "to" means no
	// upper bound, a zero "from" no lower bound.
	GetAll(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error)
	GetById(ctx context.Context, userId int, expenseId uuid.UUID) (Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, expenseId uuid.UUID) (bool, error)
	SumByCategory(ctx context.Context, userId int, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (ei *ExpenseRepoImpl) Store(ctx context.Context, userId int, expense Expense) error {
	query := `INSERT INTO expense (id, category_id, amount, date, description, vendor, user_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := ei.db.ExecContext(ctx, query,
		expense.Id,
		expense.CategoryId,
		expense.Amount.String(),
		expense.Date.Format("2006-01-02"),
		expense.Description,
		expense.Vendor,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

const expenseColumns = `id, category_id, amount, date, description, vendor`

func (ei *ExpenseRepoImpl) GetAll(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expense WHERE user_id = $1`, expenseColumns)
	args := []any{userId}
	if !from.IsZero() {
		args = append(args, from.Format("2006-01-02"))
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to.Format("2006-01-02"))
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := ei.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (ei *ExpenseRepoImpl) GetById(ctx context.Context, userId int, expenseId uuid.UUID) (Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expense WHERE id = $1 AND user_id = $2`, expenseColumns)
	row := ei.db.QueryRowContext(ctx, query, expenseId, userId)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	} else if err != nil {
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (ei *ExpenseRepoImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expense SET
                  category_id = $1,
                  amount = $2,
                  date = $3,
                  description = $4,
                  vendor = $5
              WHERE id = $6 AND user_id = $7`
	result, err := ei.db.ExecContext(ctx, query,
		expense.CategoryId,
		expense.Amount.String(),
		expense.Date.Format("2006-01-02"),
		expense.Description,
		expense.Vendor,
		expense.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
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

func (ei *ExpenseRepoImpl) Delete(ctx context.Context, userId int, expenseId uuid.UUID) (bool, error) {
	result, err := ei.db.ExecContext(ctx, "DELETE FROM expense WHERE id = $1 AND user_id = $2", expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
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

// SumByCategory sums expense amounts in a category over [from, to]. The sum is
// computed in SQL; COALESCE covers the empty case.
func (ei *ExpenseRepoImpl) SumByCategory(ctx context.Context, userId int, categoryId uuid.UUID, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense WHERE user_id = $1 AND category_id = $2`
	args := []any{userId, categoryId}
	if !from.IsZero() {
		args = append(args, from.Format("2006-01-02"))
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to.Format("2006-01-02"))
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var sum string
	if err := ei.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	parsed, err := decimal.NewFromString(sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse expense sum: %w", err)
	}
	return parsed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (Expense, error) {
	var expense Expense
	var amount string
	var date sql.NullTime
	if err := row.Scan(
		&expense.Id,
		&expense.CategoryId,
		&amount,
		&date,
		&expense.Description,
		&expense.Vendor,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Expense{}, err
		}
		return Expense{}, fmt.Errorf("could not scan expense: %w", err)
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("could not parse expense amount: %w", err)
	}
	expense.Amount = parsed
	if date.Valid {
		expense.Date = date.Time
	}
	return expense, nil
}
