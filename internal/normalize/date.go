package normalize

import (
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// Month looks up a Portuguese month name, ignoring case.
func Month(name string) (time.Month, bool) {
	m, ok := months[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseDate parses "<weekday>, <day> de <month> de <year>", e.g.
// "quinta-feira, 18 de dezembro de 2024". The result is midnight UTC, or nil
// when the text does not have that shape or names an impossible date.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil
	}

	fields := strings.Split(strings.TrimSpace(parts[1]), " de ")
	if len(fields) != 3 {
		return nil
	}

	day, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil
	}
	month, ok := Month(fields[1])
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 de fevereiro), reject it instead.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return nil
	}
	return &t
}
