// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package flyer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for flyer dates (e.g. "24.12.2026").
const DateLayout = "02.01.2006"

// NormalizePrice converts a manually entered price to the stored comma
// decimal form: dots become commas and surrounding whitespace is trimmed.
func NormalizePrice(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, ".", ","))
}

// UnitPrice derives the per-unit price from a package price and amount,
// both comma-decimal strings. Any value that fails to parse, or a zero
// amount, yields "" — entered fields are never assumed to be clean numbers.
func UnitPrice(price, amount string) string {
	price = strings.TrimSpace(price)
	amount = strings.TrimSpace(amount)
	if price == "" || amount == "" {
		return ""
	}
	priceNum, err := parseCommaDecimal(price)
	if err != nil {
		return ""
	}
	amountNum, err := parseCommaDecimal(amount)
	if err != nil || amountNum == 0 {
		return ""
	}
	return strings.ReplaceAll(fmt.Sprintf("%.2f", priceNum/amountNum), ".", ",")
}

// parseCommaDecimal parses a comma-decimal entry as a finite number.
// ParseFloat also accepts "inf" and "nan"; those are not prices.
func parseCommaDecimal(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// ParseDate parses a DD.MM.YYYY flyer date. Blank or malformed values
// report ok=false rather than an error; stored dates are strings and may
// be anything.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a time in the flyer date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
