package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout matches the en-IN locale rendering of a date and time.
const DateLayout = "02/01/2006, 3:04:05 pm"

// Formatter renders dates in a fixed location.
type Formatter struct {
	Location *time.Location
}

func (f Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// FormatINR renders an amount as Indian rupees with lakh/crore digit grouping,
// e.g. ₹1,23,456.50.
func FormatINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(whole) + "." + frac
}

// groupIndian groups the last three digits, then every two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
