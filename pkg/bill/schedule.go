package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/internal/utils"
)

// Urgency classifies how imminent or overdue a bill's next payment is.
type Urgency string

const (
	UrgencyInactive Urgency = "inactive"
	UrgencyExpired  Urgency = "expired"
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDueToday Urgency = "due_today"
	UrgencyDueSoon  Urgency = "due_soon"
	UrgencyUpcoming Urgency = "upcoming"
)

// NextOccurrence projects the next payment date of a bill, strictly after
// today. Long-overdue bills are fast-forwarded: the projection steps through
// missed occurrences until it lands on a future date, rather than reporting a
// stale one. The only date not strictly after today that can be returned is a
// start date still in the future, which is the first occurrence by definition.
//
// The monthly due-day snap is applied once, on the first step from the seed
// date, never on catch-up steps.
func NextOccurrence(b Bill, today time.Time) time.Time {
	// An unknown cadence would make the catch-up loop spin forever; callers
	// validate on every write path, so this only guards hand-built values.
	if !b.Cadence.Valid() {
		return time.Time{}
	}
	today = utils.ToDate(today)

	var next time.Time
	if b.LastPaymentDate.IsZero() {
		if !b.StartDate.IsZero() && utils.ToDate(b.StartDate).After(today) {
			return utils.ToDate(b.StartDate)
		}
		next = today
	} else {
		next = utils.ToDate(b.LastPaymentDate)
	}

	next = step(next, b.Cadence)
	if b.Cadence == CadenceMonthly && b.DueDay >= 1 && b.DueDay <= 28 {
		next = time.Date(next.Year(), next.Month(), b.DueDay, 0, 0, 0, 0, time.UTC)
	}

	for !next.After(today) {
		next = step(next, b.Cadence)
	}
	return next
}

func step(d time.Time, c Cadence) time.Time {
	switch c {
	case CadenceDaily:
		return d.AddDate(0, 0, 1)
	case CadenceWeekly:
		return d.AddDate(0, 0, 7)
	case CadenceMonthly:
		return addMonths(d, 1)
	case CadenceQuarterly:
		return addMonths(d, 3)
	case CadenceYearly:
		return addMonths(d, 12)
	}
	return d
}

// addMonths advances by whole months, clamping to the last day of the target
// month. Go's AddDate would normalize Jan 31 + 1 month into March; billing
// anchors on the 29th-31st must land on Feb 28/29 instead.
func addMonths(d time.Time, months int) time.Time {
	firstOfTarget := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	day := d.Day()
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntil returns the number of whole calendar days from one date to
// another. Negative when to is in the past relative to from.
func DaysUntil(from, to time.Time) int {
	return int(utils.ToDate(to).Sub(utils.ToDate(from)).Hours() / 24)
}

// ClassifyUrgency derives the urgency tier for a bill given its projected
// next due date. Inactive and expired take precedence over the date-based
// tiers.
func ClassifyUrgency(b Bill, nextDue time.Time, today time.Time) Urgency {
	if !b.Active {
		return UrgencyInactive
	}
	if expired(b, today) {
		return UrgencyExpired
	}

	switch days := DaysUntil(today, nextDue); {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyDueToday
	case days <= b.ReminderDays:
		return UrgencyDueSoon
	default:
		return UrgencyUpcoming
	}
}

// expired reports whether the bill's end date has passed. A zero EndDate
// means the bill is open-ended.
func expired(b Bill, today time.Time) bool {
	return !b.EndDate.IsZero() && utils.ToDate(today).After(utils.ToDate(b.EndDate))
}

var (
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.NewFromFloat(4.33)
	daysPerYear   = decimal.NewFromInt(365)
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	three         = decimal.NewFromInt(3)
	four          = decimal.NewFromInt(4)
)

// MonthlyCost normalizes a bill amount to a comparable monthly figure.
//
// Division-based conversions (quarterly, yearly) round half-up to two
// decimal places; multiplicative ones are left unrounded until display.
// The asymmetry is kept on purpose: historical reports were produced with
// it, and unifying the policy would change their totals.
func MonthlyCost(amount decimal.Decimal, cadence Cadence) decimal.Decimal {
	switch cadence {
	case CadenceDaily:
		return amount.Mul(daysPerMonth)
	case CadenceWeekly:
		return amount.Mul(weeksPerMonth)
	case CadenceMonthly:
		return amount
	case CadenceQuarterly:
		return amount.DivRound(three, 2)
	case CadenceYearly:
		return amount.DivRound(monthsPerYear, 2)
	}
	return amount
}

// YearlyCost normalizes a bill amount to a yearly figure. All conversions
// here are multiplicative and therefore unrounded.
func YearlyCost(amount decimal.Decimal, cadence Cadence) decimal.Decimal {
	switch cadence {
	case CadenceDaily:
		return amount.Mul(daysPerYear)
	case CadenceWeekly:
		return amount.Mul(weeksPerYear)
	case CadenceMonthly:
		return amount.Mul(monthsPerYear)
	case CadenceQuarterly:
		return amount.Mul(four)
	case CadenceYearly:
		return amount
	}
	return amount
}
