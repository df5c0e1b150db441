package entity

import (
	"strconv"
	"strings"
)

// Amount returns the first monetary value in text with currency symbols and
// grouping commas removed.
func Amount(text string) (float64, bool) {
	m := amountValuePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AccountNumber returns the first 6-12 digit run in text.
func AccountNumber(text string) (string, bool) {
	m := accountPattern.FindString(text)
	return m, m != ""
}

// CardNumber returns the first card-context number in text.
func CardNumber(text string) (string, bool) {
	m := cardPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
