package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	periodPattern   = regexp.MustCompile(`^(last|past|previous) (week|month|year)$`)
	absolutePattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
)

// Parser converts date phrases found in banking queries to absolute dates.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Kolkata"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Parse resolves a phrase relative to baseTime.
// Supported forms: today, yesterday, tomorrow, "last|past|previous week|month|year"
// and day-first absolute dates such as 05/03/2024 or 5-3-24.
func (p *Parser) Parse(phrase string, baseTime time.Time) (Range, error) {
	phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	today := p.startOfDay(baseTime)

	switch phrase {
	case "today":
		return Range{Start: today, End: today}, nil
	case "tomorrow":
		d := today.AddDate(0, 0, 1)
		return Range{Start: d, End: d}, nil
	case "yesterday":
		d := today.AddDate(0, 0, -1)
		return Range{Start: d, End: d}, nil
	}

	if m := periodPattern.FindStringSubmatch(phrase); m != nil {
		return p.parsePeriod(m[2], today), nil
	}

	if m := absolutePattern.FindStringSubmatch(phrase); m != nil {
		return p.parseAbsolute(m[1], m[2], m[3])
	}

	return Range{}, fmt.Errorf("unsupported date phrase: %q", phrase)
}

// parsePeriod returns the window ending yesterday that spans the given unit.
func (p *Parser) parsePeriod(unit string, today time.Time) Range {
	end := today.AddDate(0, 0, -1)
	switch unit {
	case "week":
		return Range{Start: today.AddDate(0, 0, -7), End: end}
	case "month":
		return Range{Start: today.AddDate(0, -1, 0), End: end}
	default:
		return Range{Start: today.AddDate(-1, 0, 0), End: end}
	}
}

// parseAbsolute handles day-first dates. Two-digit years are read as 20xx.
func (p *Parser) parseAbsolute(dayStr, monthStr, yearStr string) (Range, error) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	switch len(yearStr) {
	case 2:
		year += 2000
	case 3:
		return Range{}, fmt.Errorf("invalid year: %q", yearStr)
	}

	if month < 1 || month > 12 {
		return Range{}, fmt.Errorf("invalid month: %d", month)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.location)
	if d.Day() != day || int(d.Month()) != month {
		return Range{}, fmt.Errorf("invalid day: %d", day)
	}
	return Range{Start: d, End: d}, nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
