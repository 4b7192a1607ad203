package locale

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"github.com/tsawler/folio/validation"
)

// Formatter converts values to text for one locale.
type Formatter struct {
	loc  *Locale
	log  *zap.Logger
	unit *currency.Unit
}

// New returns a formatter for code. An unknown code selects the default
// locale and reports an unknown_locale warning.
func New(code string, log *zap.Logger) (*Formatter, []validation.Warning) {
	if log == nil {
		log = zap.NewNop()
	}
	loc, ok := Lookup(code)
	f := &Formatter{loc: loc, log: log}
	if ok {
		return f, nil
	}
	log.Debug("unknown locale, using default", zap.String("locale", code), zap.String("default", loc.Code))
	return f, []validation.Warning{{
		Code:     validation.CodeUnknownLocale,
		Property: "locale",
		Value:    code,
		Message:  "unknown locale; using " + loc.Code,
	}}
}

// Locale returns the selected table entry.
func (f *Formatter) Locale() *Locale { return f.loc }

// Text converts v with the default rule for its type: numbers use the
// locale's separators, booleans print as true/false, times use ISO 8601
// and everything else its natural string form. Nil is the empty string.
func (f *Formatter) Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return f.integer(int64(t))
	case int8:
		return f.integer(int64(t))
	case int16:
		return f.integer(int64(t))
	case int32:
		return f.integer(int64(t))
	case int64:
		return f.integer(t)
	case uint, uint8, uint16, uint32, uint64:
		u, _ := strconv.ParseUint(fmt.Sprint(t), 10, 64)
		return f.loc.group(strconv.FormatUint(u, 10))
	case float32:
		return f.loc.Number(float64(t), -1)
	case float64:
		return f.loc.Number(t, -1)
	case json.Number:
		if n, err := t.Float64(); err == nil {
			return f.loc.Number(n, -1)
		}
		return t.String()
	case time.Time:
		return isoTime(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return isoTime(*t)
	case time.Duration:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	return fmt.Sprint(v)
}

func (f *Formatter) integer(n int64) string {
	if n < 0 {
		return "-" + f.loc.group(strconv.FormatUint(uint64(-(n+1))+1, 10))
	}
	return f.loc.group(strconv.FormatInt(n, 10))
}

func isoTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// Format converts v using a field format: "number", "currency",
// "currency:XXX", "percent", "date", "time", "datetime", "bool", or a
// strftime pattern containing "%". places overrides the decimal count of
// numeric formats. Formatting problems degrade to the unformatted text
// and a warning.
func (f *Formatter) Format(v any, format string, places *int) (string, []validation.Warning) {
	p := -1
	if places != nil {
		p = *places
	}
	kind, arg, _ := strings.Cut(strings.TrimSpace(format), ":")
	if strings.Contains(format, "%") {
		kind = "strftime"
	}

	switch strings.ToLower(kind) {
	case "":
		if n, ok := ToNumber(v); ok && places != nil {
			return f.loc.Number(n, p), nil
		}
		return f.Text(v), nil
	case "number", "decimal", "integer":
		if strings.EqualFold(kind, "integer") && places == nil {
			p = 0
		}
		if n, ok := ToNumber(v); ok {
			return f.loc.Number(n, p), nil
		}
	case "currency":
		n, ok := ToNumber(v)
		if !ok {
			break
		}
		unit, w := f.currency(arg)
		return f.loc.Currency(n, unit, p), w
	case "percent":
		if n, ok := ToNumber(v); ok {
			return f.loc.Percent(n, p), nil
		}
	case "bool", "boolean":
		return strconv.FormatBool(truthy(v)), nil
	case "date", "time", "datetime", "strftime":
		t, ok := ParseTime(v)
		if !ok {
			f.log.Debug("unparseable date, passing through", zap.Any("value", v), zap.String("format", format))
			return f.Text(v), []validation.Warning{{
				Code:    validation.CodeInvalidDate,
				Value:   v,
				Message: fmt.Sprintf("cannot format %q as %s", f.Text(v), format),
			}}
		}
		switch strings.ToLower(kind) {
		case "date":
			return f.loc.Date(t), nil
		case "time":
			return f.loc.Time(t), nil
		case "datetime":
			return f.loc.DateTime(t), nil
		default:
			return f.loc.Strftime(t, format), nil
		}
	default:
		f.log.Debug("unknown field format", zap.String("format", format))
	}
	return f.Text(v), nil
}

// SetCurrency replaces the locale's regional currency for "currency"
// fields that name none. An unknown code is reported and ignored.
func (f *Formatter) SetCurrency(code string) []validation.Warning {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		f.log.Debug("unknown default currency", zap.String("currency", code))
		return []validation.Warning{{
			Code:     validation.CodeUnknownCurrency,
			Property: "currency",
			Value:    code,
			Message:  "unknown currency; using " + f.loc.DefaultCurrency().String(),
		}}
	}
	f.unit = &unit
	return nil
}

func (f *Formatter) defaultCurrency() currency.Unit {
	if f.unit != nil {
		return *f.unit
	}
	return f.loc.DefaultCurrency()
}

func (f *Formatter) currency(code string) (currency.Unit, []validation.Warning) {
	if code == "" {
		return f.defaultCurrency(), nil
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err == nil {
		return unit, nil
	}
	def := f.defaultCurrency()
	f.log.Debug("unknown currency, using default", zap.String("currency", code), zap.String("default", def.String()))
	return def, []validation.Warning{{
		Code:    validation.CodeUnknownCurrency,
		Value:   code,
		Message: "unknown currency; using " + def.String(),
	}}
}

// ToNumber converts numeric values and numeric strings to float64.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err == nil {
			return b
		}
		return t != ""
	}
	if n, ok := ToNumber(v); ok {
		return n != 0
	}
	return true
}
