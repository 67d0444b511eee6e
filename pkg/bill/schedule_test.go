package bill

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name  string
		bill  Bill
		today time.Time
		want  time.Time
	}{
		{
			name: "monthly bill paid last month lands on its due day",
			bill: Bill{
				Cadence:         CadenceMonthly,
				DueDay:          15,
				LastPaymentDate: date(2024, time.January, 15),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.February, 15),
		},
		{
			name: "monthly bill with three missed payments fast-forwards past today",
			bill: Bill{
				Cadence:         CadenceMonthly,
				LastPaymentDate: date(2023, time.November, 1),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.March, 1),
		},
		{
			name: "never paid with future start date returns the start date",
			bill: Bill{
				Cadence:   CadenceMonthly,
				StartDate: date(2024, time.June, 1),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.June, 1),
		},
		{
			name: "never paid with past start date projects from today",
			bill: Bill{
				Cadence:   CadenceDaily,
				StartDate: date(2023, time.January, 1),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.February, 2),
		},
		{
			name: "weekly candidate equal to today advances one more week",
			bill: Bill{
				Cadence:         CadenceWeekly,
				LastPaymentDate: date(2024, time.January, 25),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.February, 8),
		},
		{
			name: "due day equal to today advances a full month",
			bill: Bill{
				Cadence:         CadenceMonthly,
				DueDay:          15,
				LastPaymentDate: date(2024, time.January, 15),
			},
			today: date(2024, time.February, 15),
			want:  date(2024, time.March, 15),
		},
		{
			name: "month-end anchor clamps to the last day of February (leap year)",
			bill: Bill{
				Cadence:         CadenceMonthly,
				LastPaymentDate: date(2024, time.January, 31),
			},
			today: date(2024, time.February, 15),
			want:  date(2024, time.February, 29),
		},
		{
			name: "month-end anchor clamps to the last day of February (non-leap year)",
			bill: Bill{
				Cadence:         CadenceMonthly,
				LastPaymentDate: date(2023, time.January, 31),
			},
			today: date(2023, time.February, 15),
			want:  date(2023, time.February, 28),
		},
		{
			name: "quarterly catch-up steps in whole quarters",
			bill: Bill{
				Cadence:         CadenceQuarterly,
				LastPaymentDate: date(2023, time.November, 15),
			},
			today: date(2024, time.February, 20),
			want:  date(2024, time.May, 15),
		},
		{
			name: "yearly from a leap day clamps to February 28",
			bill: Bill{
				Cadence:         CadenceYearly,
				LastPaymentDate: date(2024, time.February, 29),
			},
			today: date(2025, time.January, 1),
			want:  date(2025, time.February, 28),
		},
		{
			name: "due day snap applies once, catch-up keeps the snapped day",
			bill: Bill{
				Cadence:         CadenceMonthly,
				DueDay:          5,
				LastPaymentDate: date(2023, time.December, 20),
			},
			today: date(2024, time.March, 10),
			want:  date(2024, time.April, 5),
		},
		{
			name: "daily paid today is due tomorrow",
			bill: Bill{
				Cadence:         CadenceDaily,
				LastPaymentDate: date(2024, time.February, 1),
			},
			today: date(2024, time.February, 1),
			want:  date(2024, time.February, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.bill, tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence() = %v, want %v", got, tt.want)
			}
			if !tt.bill.StartDate.After(tt.today) && !got.After(tt.today) {
				t.Errorf("NextOccurrence() = %v is not strictly after today %v", got, tt.today)
			}
		})
	}
}

func TestNextOccurrence_PayingAdvancesTheSchedule(t *testing.T) {
	today := date(2024, time.February, 1)
	for _, cadence := range []Cadence{CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceQuarterly, CadenceYearly} {
		bill := Bill{
			Cadence:         cadence,
			LastPaymentDate: date(2023, time.June, 10),
		}
		first := NextOccurrence(bill, today)

		// Paying on the projected date must yield a strictly later projection.
		bill.LastPaymentDate = first
		second := NextOccurrence(bill, today)
		if !second.After(first) {
			t.Errorf("cadence %s: second projection %v not after first %v", cadence, second, first)
		}
	}
}

func TestNextOccurrence_UnknownCadenceReturnsZero(t *testing.T) {
	bill := Bill{
		Cadence:         "fortnightly",
		LastPaymentDate: date(2024, time.January, 1),
	}
	if got := NextOccurrence(bill, date(2024, time.February, 1)); !got.IsZero() {
		t.Errorf("NextOccurrence() = %v, want zero time", got)
	}
}

func TestDaysUntil(t *testing.T) {
	from := date(2024, time.February, 1)
	if got := DaysUntil(from, date(2024, time.February, 15)); got != 14 {
		t.Errorf("DaysUntil() = %d, want 14", got)
	}
	if got := DaysUntil(from, from); got != 0 {
		t.Errorf("DaysUntil() = %d, want 0", got)
	}
	if got := DaysUntil(from, date(2024, time.January, 31)); got != -1 {
		t.Errorf("DaysUntil() = %d, want -1", got)
	}
}

func TestClassifyUrgency(t *testing.T) {
	today := date(2024, time.February, 1)
	tests := []struct {
		name    string
		bill    Bill
		nextDue time.Time
		want    Urgency
	}{
		{
			name:    "inactive bill is never due",
			bill:    Bill{Active: false, ReminderDays: 3},
			nextDue: today,
			want:    UrgencyInactive,
		},
		{
			name:    "inactive takes precedence over expired",
			bill:    Bill{Active: false, EndDate: date(2023, time.December, 31)},
			nextDue: today,
			want:    UrgencyInactive,
		},
		{
			name:    "ended bill is expired regardless of the projected date",
			bill:    Bill{Active: true, EndDate: date(2023, time.December, 31)},
			nextDue: date(2024, time.March, 1),
			want:    UrgencyExpired,
		},
		{
			name:    "end date equal to today is not yet expired",
			bill:    Bill{Active: true, EndDate: today},
			nextDue: today,
			want:    UrgencyDueToday,
		},
		{
			name:    "past due date is overdue",
			bill:    Bill{Active: true, ReminderDays: 3},
			nextDue: date(2024, time.January, 20),
			want:    UrgencyOverdue,
		},
		{
			name:    "due today",
			bill:    Bill{Active: true, ReminderDays: 3},
			nextDue: today,
			want:    UrgencyDueToday,
		},
		{
			name:    "within the reminder window is due soon",
			bill:    Bill{Active: true, ReminderDays: 3},
			nextDue: date(2024, time.February, 4),
			want:    UrgencyDueSoon,
		},
		{
			name:    "one day past the reminder window is upcoming",
			bill:    Bill{Active: true, ReminderDays: 3},
			nextDue: date(2024, time.February, 5),
			want:    UrgencyUpcoming,
		},
		{
			name:    "zero reminder window never reports due soon",
			bill:    Bill{Active: true, ReminderDays: 0},
			nextDue: date(2024, time.February, 2),
			want:    UrgencyUpcoming,
		},
		{
			name: "monthly bill paid mid-january is upcoming on february 1st",
			bill: Bill{
				Active:          true,
				Cadence:         CadenceMonthly,
				DueDay:          15,
				LastPaymentDate: date(2024, time.January, 15),
				ReminderDays:    3,
			},
			nextDue: date(2024, time.February, 15),
			want:    UrgencyUpcoming,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyUrgency(tt.bill, tt.nextDue, today); got != tt.want {
				t.Errorf("ClassifyUrgency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		cadence Cadence
		want    string
	}{
		{"daily multiplies by 30", "2", CadenceDaily, "60"},
		{"weekly multiplies by 4.33", "10", CadenceWeekly, "43.3"},
		{"monthly is unchanged", "12.34", CadenceMonthly, "12.34"},
		{"quarterly divides by 3 rounding half-up", "100", CadenceQuarterly, "33.33"},
		{"quarterly rounding boundary", "100.03", CadenceQuarterly, "33.34"},
		{"yearly divides by 12 rounding half-up", "100", CadenceYearly, "8.33"},
		{"yearly half-up at the midpoint", "100.50", CadenceYearly, "8.38"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got := MonthlyCost(amount, tt.cadence)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("MonthlyCost(%s, %s) = %s, want %s", tt.amount, tt.cadence, got, tt.want)
			}
		})
	}
}

func TestYearlyCost(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		cadence Cadence
		want    string
	}{
		{"daily multiplies by 365", "2", CadenceDaily, "730"},
		{"weekly multiplies by 52", "10", CadenceWeekly, "520"},
		{"monthly multiplies by 12", "12.34", CadenceMonthly, "148.08"},
		{"quarterly multiplies by 4", "100", CadenceQuarterly, "400"},
		{"yearly is unchanged", "99.99", CadenceYearly, "99.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got := YearlyCost(amount, tt.cadence)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("YearlyCost(%s, %s) = %s, want %s", tt.amount, tt.cadence, got, tt.want)
			}
		})
	}
}

func TestCostNormalization_MultiplicativeCadencesAreConsistent(t *testing.T) {
	// For cadences converted by multiplication on both axes, the yearly figure
	// should be close to twelve monthly ones. 4.33 weeks/month vs 52 weeks/year
	// leaves a small gap, so the comparison uses a tolerance.
	tolerance := decimal.RequireFromString("0.05")
	for _, cadence := range []Cadence{CadenceDaily, CadenceWeekly} {
		amount := decimal.RequireFromString("10")
		monthly := MonthlyCost(amount, cadence).Mul(decimal.NewFromInt(12))
		yearly := YearlyCost(amount, cadence)
		diff := monthly.Sub(yearly).Abs().Div(yearly)
		if diff.GreaterThan(tolerance) {
			t.Errorf("cadence %s: monthly*12 = %s deviates from yearly %s by more than %s",
				cadence, monthly, yearly, tolerance)
		}
	}
}

func TestBillValidate(t *testing.T) {
	valid := Bill{
		Cadence: CadenceMonthly,
		Amount:  decimal.RequireFromString("9.99"),
		DueDay:  15,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(b Bill) Bill
		wantErr error
	}{
		{"unknown cadence", func(b Bill) Bill { b.Cadence = "fortnightly"; return b }, ErrInvalidCadence},
		{"negative amount", func(b Bill) Bill { b.Amount = decimal.RequireFromString("-1"); return b }, ErrNegativeAmount},
		{"due day above 28", func(b Bill) Bill { b.DueDay = 31; return b }, ErrInvalidDueDay},
		{"due day below zero", func(b Bill) Bill { b.DueDay = -2; return b }, ErrInvalidDueDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid).Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
