package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := map[string]string{
		"0":          "₹0.00",
		"50":         "₹50.00",
		"999.999":    "₹1,000.00",
		"1500":       "₹1,500.00",
		"123456.5":   "₹1,23,456.50",
		"1234567.25": "₹12,34,567.25",
		"-1500":      "-₹1,500.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatINR(decimal.RequireFromString(in)), in)
	}
}

func TestFormatter_Date(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	f := Formatter{Location: ist}

	ts := time.Date(2026, 10, 14, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "14/10/2026, 3:00:05 pm", f.Date(ts))
	assert.Equal(t, "14/10/2026, 9:30:05 am", Formatter{}.Date(ts))
	assert.Empty(t, f.Date(time.Time{}))
}
