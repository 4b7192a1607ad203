package locale

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// maxAutoPlaces bounds the precision of numbers formatted without an
// explicit decimal place count.
const maxAutoPlaces = 6

// Number formats v with the locale's separators. A negative places value
// prints as many decimals as needed, up to six.
func (l *Locale) Number(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	var s string
	if places < 0 {
		s = strconv.FormatFloat(v, 'f', maxAutoPlaces, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
	} else {
		s = strconv.FormatFloat(v, 'f', places, 64)
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if neg && strings.Trim(intPart+frac, "0") == "" {
		neg = false
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(l.group(intPart))
	if hasFrac {
		sb.WriteString(l.Decimal)
		sb.WriteString(frac)
	}
	return sb.String()
}

func (l *Locale) group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if l.IndianGrouping {
		size = 2
	}
	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(append(parts, tail), l.Group)
}

// Percent multiplies v by 100 and appends "%". A negative places value
// prints as many decimals as needed.
func (l *Locale) Percent(v float64, places int) string {
	return l.Number(v*100, places) + "%"
}

// Scale returns the number of minor-unit digits of an ISO 4217 currency.
func Scale(unit currency.Unit) int {
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// Symbol returns the display symbol for an ISO 4217 currency code.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Currency formats v as an amount of unit. A negative places value uses
// the currency's standard minor-unit count.
func (l *Locale) Currency(v float64, unit currency.Unit, places int) string {
	if places < 0 {
		places = Scale(unit)
	}
	amount := l.Number(math.Abs(v), places)
	sym := Symbol(unit.String())
	sep := ""
	if l.CurrencySpace {
		sep = " "
	}

	var sb strings.Builder
	if v < 0 && strings.Trim(amount, "0"+l.Decimal+l.Group) != "" {
		sb.WriteByte('-')
	}
	if l.CurrencyAfter {
		sb.WriteString(amount)
		sb.WriteString(sep)
		sb.WriteString(sym)
	} else {
		sb.WriteString(sym)
		sb.WriteString(sep)
		sb.WriteString(amount)
	}
	return sb.String()
}

// DefaultCurrency returns the currency used in the locale's region.
func (l *Locale) DefaultCurrency() currency.Unit {
	unit, conf := currency.FromTag(l.Tag())
	if conf == language.No {
		return currency.USD
	}
	return unit
}
