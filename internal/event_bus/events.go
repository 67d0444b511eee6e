package event_bus

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ExpenseRecordedEvent EventType = "expense.recorded"
	BillPaidEvent        EventType = "bill.paid"
)

// ExpenseRecorded is published after a new expense has been stored.
type ExpenseRecorded struct {
	ExpenseId  uuid.UUID
	CategoryId uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
}

// BillPaid is published after a bill has been marked as paid.
type BillPaid struct {
	BillId uuid.UUID
	PaidOn time.Time
	Amount decimal.Decimal
}
