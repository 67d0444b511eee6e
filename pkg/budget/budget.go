package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrNegativeLimit    = errors.New("limit must not be negative")
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
)

type Budget struct {
	Id         uuid.UUID
	CategoryId uuid.UUID
	Name       string
	Limit      decimal.Decimal
	// AlertThreshold is the percentage of Limit at which the warning tier
	// begins. The danger tier is fixed at 90 and not configurable.
	AlertThreshold int
	StartDate      time.Time
	EndDate        time.Time
	Active         bool
}

// Validate checks the preconditions the accountant relies on.
func (b Budget) Validate() error {
	if b.Limit.IsNegative() {
		return ErrNegativeLimit
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}
