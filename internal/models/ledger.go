package models

import (
	"fmt"
	"time"
)

// DailyLedger maps a month key to per-day recorded spending. Day keys are
// 1..daysInMonth. Only the budget pacer consumes it; it is independent of
// transaction records.
type DailyLedger map[string]map[int]float64

// MonthKey builds the ledger key for a month. The stored format keeps the
// 0-based month index of the original data ("2024-0" for January 2024).
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month())-1)
}

// DaySpent returns the recorded spend for a day, defaulting to zero
func (l DailyLedger) DaySpent(monthKey string, day int) float64 {
	if days, ok := l[monthKey]; ok {
		return days[day]
	}
	return 0
}

// SetDaySpent records the spend for a day, creating the month map if needed
func (l DailyLedger) SetDaySpent(monthKey string, day int, value float64) {
	if l[monthKey] == nil {
		l[monthKey] = make(map[int]float64)
	}
	l[monthKey][day] = value
}

// DaysInMonth returns the day count of ref's month (day 0 of next month)
func DaysInMonth(ref time.Time) int {
	return time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location()).Day()
}
