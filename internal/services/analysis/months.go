package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MonthRef identifies a calendar month extracted from free text
type MonthRef struct {
	Month int    // 0-based, January = 0
	Year  int
	Label string // the phrase that matched, for echoing back in answers
}

// monthNames maps Portuguese month names to 0-based indexes. March has an
// accent-free alternate spelling.
var monthNames = []struct {
	name  string
	index int
}{
	{"janeiro", 0},
	{"fevereiro", 1},
	{"março", 2},
	{"marco", 2},
	{"abril", 3},
	{"maio", 4},
	{"junho", 5},
	{"julho", 6},
	{"agosto", 7},
	{"setembro", 8},
	{"outubro", 9},
	{"novembro", 10},
	{"dezembro", 11},
}

var yearPattern = regexp.MustCompile(`20\d{2}`)

// lastMonthPhrases are recognized synonyms for "the month before now"
var lastMonthPhrases = []string{
	"mês passado",
	"mes passado",
	"último mês",
	"ultimo mes",
}

// DetectMonth scans free text for a named month (with optional 4-digit
// year, defaulting to now's year) or a previous-month phrase. Returns nil
// when no date information is recognized; the caller falls back to the
// current month.
func DetectMonth(text string, now time.Time) *MonthRef {
	q := strings.ToLower(text)

	for _, m := range monthNames {
		if strings.Contains(q, m.name) {
			year := now.Year()
			if match := yearPattern.FindString(q); match != "" {
				year, _ = strconv.Atoi(match)
			}
			return &MonthRef{Month: m.index, Year: year, Label: m.name}
		}
	}

	for _, phrase := range lastMonthPhrases {
		if strings.Contains(q, phrase) {
			prev := PreviousMonth(now)
			return &MonthRef{
				Month: int(prev.Month()) - 1,
				Year:  prev.Year(),
				Label: "mês passado",
			}
		}
	}

	return nil
}
