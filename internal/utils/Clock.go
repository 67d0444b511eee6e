package utils

import "time"

type Clock interface {
	Now() time.Time
	// Today returns the current calendar date truncated to midnight UTC.
	// Schedule projection and budget evaluation operate on dates, not instants.
	Today() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

func (s SystemClock) Today() time.Time {
	return ToDate(time.Now())
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) Today() time.Time {
	return ToDate(m.FixedNow)
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// ToDate truncates a time to its calendar date in UTC.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
