package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cadence is the billing interval of a recurring bill or subscription.
type Cadence string

const (
	CadenceDaily     Cadence = "daily"
	CadenceWeekly    Cadence = "weekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceYearly    Cadence = "yearly"
)

func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceQuarterly, CadenceYearly:
		return true
	}
	return false
}

var (
	ErrBillNotFound   = errors.New("bill not found")
	ErrInvalidCadence = errors.New("invalid billing cadence")
	ErrInvalidDueDay  = errors.New("due day must be between 1 and 28")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

type Bill struct {
	Id          uuid.UUID
	CategoryId  uuid.UUID
	Name        string
	Vendor      string
	Description string
	Amount      decimal.Decimal
	Cadence     Cadence
	// DueDay is the day of month the payment is due, honored only for the
	// monthly cadence. 0 means unset. Days 29-31 are rejected so a snapped
	// due date can never overflow into the next month.
	DueDay          int
	StartDate       time.Time
	EndDate         time.Time // zero = open-ended
	LastPaymentDate time.Time // zero = never paid
	ReminderDays    int
	Active          bool
}

// Validate checks the preconditions the schedule engine relies on.
// It is called on every write; the engine itself does not re-check.
func (b Bill) Validate() error {
	if !b.Cadence.Valid() {
		return ErrInvalidCadence
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if b.DueDay != 0 && (b.DueDay < 1 || b.DueDay > 28) {
		return ErrInvalidDueDay
	}
	if b.ReminderDays < 0 {
		return errors.New("reminder days must not be negative")
	}
	return nil
}
