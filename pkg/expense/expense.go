package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingDate     = errors.New("date is required")
)

type Expense struct {
	Id          uuid.UUID
	CategoryId  uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Vendor      string
}

func (e Expense) Validate() error {
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.CategoryId == uuid.Nil {
		return ErrMissingCategory
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
