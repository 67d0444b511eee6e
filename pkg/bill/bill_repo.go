package bill

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

type BillRepo interface {
	// Store stores a new Bill to the database
	Store(ctx context.Context, userId int, bill Bill) error
	GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error)
	GetById(ctx context.Context, userId int, billId uuid.UUID) (Bill, error)
	Update(ctx context.Context, userId int, bill Bill) (bool, error)
	UpdateLastPayment(ctx context.Context, userId int, billId uuid.UUID, paidOn time.Time) (bool, error)
	Delete(ctx context.Context, userId int, billId uuid.UUID) (bool, error)
}

type BillRepoImpl struct {
	db *sql.DB
}

func NewBillRepo(db *sql.DB) *BillRepoImpl {
	return &BillRepoImpl{db: db}
}

func (bi *BillRepoImpl) Store(ctx context.Context, userId int, bill Bill) error {
	query := `INSERT INTO bill (
                    id,
                    category_id,
                    name,
                    vendor,
                    description,
                    amount,
                    cadence,
                    due_day,
                    start_date,
                    end_date,
                    last_payment_date,
                    reminder_days,
                    active,
                    user_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := bi.db.ExecContext(ctx, query,
		bill.Id,
		bill.CategoryId,
		bill.Name,
		bill.Vendor,
		bill.Description,
		bill.Amount.String(),
		bill.Cadence,
		bill.DueDay,
		dateParam(bill.StartDate),
		dateParam(bill.EndDate),
		dateParam(bill.LastPaymentDate),
		bill.ReminderDays,
		bill.Active,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store bill: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

const billColumns = `id, category_id, name, vendor, description, amount, cadence, due_day, start_date, end_date,
				last_payment_date, reminder_days, active`

func (bi *BillRepoImpl) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error) {
	activeWhereQuery := "AND bill.active = true"
	if includeInactive {
		activeWhereQuery = ""
	}
	query := fmt.Sprintf(`SELECT %s FROM bill WHERE bill.user_id = $1 %s ORDER BY name`, billColumns, activeWhereQuery)
	rows, err := bi.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query bills: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return bills, nil
}

func (bi *BillRepoImpl) GetById(ctx context.Context, userId int, billId uuid.UUID) (Bill, error) {
	query := fmt.Sprintf(`SELECT %s FROM bill WHERE id = $1 AND user_id = $2`, billColumns)
	row := bi.db.QueryRowContext(ctx, query, billId, userId)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Bill{}, ErrBillNotFound
	} else if err != nil {
		log.Error(err)
		return Bill{}, err
	}
	return bill, nil
}

func (bi *BillRepoImpl) Update(ctx context.Context, userId int, bill Bill) (bool, error) {
	query := `UPDATE bill SET
                  category_id = $1,
                  name = $2,
                  vendor = $3,
                  description = $4,
                  amount = $5,
                  cadence = $6,
                  due_day = $7,
                  start_date = $8,
                  end_date = $9,
                  reminder_days = $10,
                  active = $11
              WHERE id = $12 AND user_id = $13`
	result, err := bi.db.ExecContext(ctx, query,
		bill.CategoryId,
		bill.Name,
		bill.Vendor,
		bill.Description,
		bill.Amount.String(),
		bill.Cadence,
		bill.DueDay,
		dateParam(bill.StartDate),
		dateParam(bill.EndDate),
		bill.ReminderDays,
		bill.Active,
		bill.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update bill: %w", err)
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

func (bi *BillRepoImpl) UpdateLastPayment(ctx context.Context, userId int, billId uuid.UUID, paidOn time.Time) (bool, error) {
	query := "UPDATE bill SET last_payment_date = $1 WHERE id = $2 AND user_id = $3"
	result, err := bi.db.ExecContext(ctx, query, dateParam(paidOn), billId, userId)
	if err != nil {
		err := fmt.Errorf("could not update last payment date: %w", err)
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

func (bi *BillRepoImpl) Delete(ctx context.Context, userId int, billId uuid.UUID) (bool, error) {
	result, err := bi.db.ExecContext(ctx, "DELETE FROM bill WHERE id = $1 AND user_id = $2", billId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete bill: %w", err)
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

func scanBill(row rowScanner) (Bill, error) {
	var bill Bill
	var amount string
	var startDate, endDate, lastPayment sql.NullTime
	if err := row.Scan(
		&bill.Id,
		&bill.CategoryId,
		&bill.Name,
		&bill.Vendor,
		&bill.Description,
		&amount,
		&bill.Cadence,
		&bill.DueDay,
		&startDate,
		&endDate,
		&lastPayment,
		&bill.ReminderDays,
		&bill.Active,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Bill{}, err
		}
		return Bill{}, fmt.Errorf("could not scan bill: %w", err)
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Bill{}, fmt.Errorf("could not parse bill amount: %w", err)
	}
	bill.Amount = parsed
	if startDate.Valid {
		bill.StartDate = startDate.Time
	}
	if endDate.Valid {
		bill.EndDate = endDate.Time
	}
	if lastPayment.Valid {
		bill.LastPaymentDate = lastPayment.Time
	}
	return bill, nil
}

func dateParam(date time.Time) any {
	if date.IsZero() {
		return nil
	}
	return date.Format("2006-01-02")
}
