//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Category is the closed product category set. Raw values are mapped
// through an alias table; anything unmapped is Unknown and excluded from
// category-level aggregates such as median price.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryElectronics
	CategoryFashion
	CategoryGroceries
)

// String returns the canonical category name.
func (c Category) String() string {
	switch c {
	case CategoryElectronics:
		return "Electronics"
	case CategoryFashion:
		return "Fashion"
	case CategoryGroceries:
		return "Groceries"
	default:
		return "Unknown"
	}
}

// categoryAliases maps lowercased raw values to categories. Covers the
// canonical names plus the singular/abbreviated variants seen in the raw
// feeds.
var categoryAliases = map[string]Category{
	"electronics": CategoryElectronics,
	"electronic":  CategoryElectronics,
	"fashion":     CategoryFashion,
	"fashions":    CategoryFashion,
	"apparel":     CategoryFashion,
	"groceries":   CategoryGroceries,
	"grocery":     CategoryGroceries,
}

// NormalizeCategory maps a raw category value to the closed set.
// Unmatched values return CategoryUnknown.
func NormalizeCategory(s string) Category {
	key := strings.ToLower(NormalizeSpaces(s))
	if key == "" {
		return CategoryUnknown
	}
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return CategoryUnknown
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeSpaces collapses runs of whitespace and trims the result.
func NormalizeSpaces(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizeCity normalizes whitespace and title-cases the city name.
func NormalizeCity(s string) string {
	return titleCase(NormalizeSpaces(s))
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest. strings.Title is deprecated and cases mid-word letters wrong for
// this use.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// FallbackEmail returns the deterministic placeholder email for a
// customer with no raw email. Uniqueness follows from customer_id being
// unique after dedup.
func FallbackEmail(customerID string) string {
	return "unknown+" + strings.ToLower(customerID) + "@fleximart.local"
}

// NormalizeEmail lower-cases a present email, or synthesizes the
// deterministic placeholder when missing. The second return value
// reports whether a fill happened.
func NormalizeEmail(email, customerID string) (string, bool) {
	email = NormalizeSpaces(email)
	if email == "" {
		return FallbackEmail(customerID), true
	}
	return strings.ToLower(email), false
}

var nonDigitRe = regexp.MustCompile(`\D+`)

// NormalizePhone standardizes a phone number to +91- followed by exactly
// ten digits. Handles bare ten-digit numbers, 91 country prefixes and
// leading-zero trunk prefixes. Returns "" when the input cannot be
// reduced to ten digits.
func NormalizePhone(s string) string {
	s = NormalizeSpaces(s)
	if s == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(s, "")
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[len(digits)-10:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[len(digits)-10:]
	case len(digits) > 10:
		digits = digits[len(digits)-10:]
	}
	if len(digits) != 10 {
		return ""
	}
	return "+91-" + digits
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseFlexDate parses the date formats that occur in the raw feeds:
// YYYY-MM-DD, DD/MM/YYYY, MM/DD/YYYY, MM-DD-YYYY and DD-MM-YYYY.
// Ambiguity rule: a second component over 12 means month-first, a first
// component over 12 means day-first, otherwise month-first. Returns
// false when the value cannot be parsed.
func ParseFlexDate(s string) (time.Time, bool) {
	s = NormalizeSpaces(s)
	if s == "" {
		return time.Time{}, false
	}

	if isoDateRe.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	delim := ""
	switch {
	case strings.Contains(s, "/"):
		delim = "/"
	case strings.Contains(s, "-"):
		delim = "-"
	default:
		return time.Time{}, false
	}

	parts := strings.Split(s, delim)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	// Year-first with single-digit month/day components.
	if len(parts[0]) == 4 {
		return buildDate(parts[0], parts[1], parts[2])
	}
	if len(parts[2]) != 4 {
		return time.Time{}, false
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return time.Time{}, false
	}

	dayFirst := a > 12 && b <= 12
	if dayFirst {
		return buildDate(parts[2], parts[1], parts[0])
	}
	return buildDate(parts[2], parts[0], parts[1])
}

func buildDate(year, month, day string) (time.Time, bool) {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject that.
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, false
	}
	return t, true
}

// ParsePrice parses a non-negative price. Returns false for missing,
// non-numeric or negative values.
func ParsePrice(s string) (float64, bool) {
	s = NormalizeSpaces(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseStock parses a stock quantity. The second return value is false
// when the value was missing or unparseable and defaulted to zero.
func ParseStock(s string) (int, bool) {
	s = NormalizeSpaces(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Median returns the median of values: the middle element for an odd
// count, the mean of the two middle elements for an even count.
// Returns false for an empty slice.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
