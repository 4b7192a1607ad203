package locale

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// dateLayouts are the string forms accepted as dates, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// ParseTime converts a time.Time, a date/time string or a Unix timestamp
// into a time.Time.
func ParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case int64:
		return time.Unix(t, 0).UTC(), true
	case int:
		return time.Unix(int64(t), 0).UTC(), true
	}
	return time.Time{}, false
}

// Strftime formats t with a strftime-style pattern. Besides the standard
// directives, %-d %-m %-H %-I print without zero padding, and the names
// behind %a %A %b %B %p %x %X %c come from the locale. Unknown directives
// are copied through.
func (l *Locale) Strftime(t time.Time, pattern string) string {
	return l.compile(pattern).FormatString(t)
}

// knownVerbs are the directives understood by the strftime library.
const knownVerbs = "AaBbCcDdeFHIjklMmnpRrSTtUuVvWwXxYyZz%"

// unpadded maps the letter after "%-" to the private verb registered for
// it.
var unpadded = map[byte]byte{'d': 'f', 'm': 'g', 'H': 'K', 'I': 'L'}

type compiledKey struct{ locale, pattern string }

// compiled caches one formatter per locale and pattern.
var compiled sync.Map

func (l *Locale) compile(pattern string) *strftime.Strftime {
	key := compiledKey{l.Code, pattern}
	if f, ok := compiled.Load(key); ok {
		return f.(*strftime.Strftime)
	}
	f, err := strftime.New(normalizePattern(pattern), l.specifications()...)
	if err != nil {
		// print the pattern verbatim
		f, _ = strftime.New(strings.ReplaceAll(pattern, "%", "%%"))
	}
	actual, _ := compiled.LoadOrStore(key, f)
	return actual.(*strftime.Strftime)
}

// normalizePattern rewrites "%-X" to private verbs and escapes directives
// the library does not know so they print verbatim.
func normalizePattern(pattern string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(pattern) {
			sb.WriteString("%%")
			break
		}
		next := pattern[i+1]
		if next == '-' && i+2 < len(pattern) {
			if v, ok := unpadded[pattern[i+2]]; ok {
				sb.WriteByte('%')
				sb.WriteByte(v)
				i += 2
				continue
			}
		}
		if strings.IndexByte(knownVerbs, next) >= 0 {
			sb.WriteByte('%')
			sb.WriteByte(next)
		} else {
			sb.WriteString("%%")
			sb.WriteByte(next)
		}
		i++
	}
	return sb.String()
}

func (l *Locale) specifications() []strftime.Option {
	text := func(fn func(time.Time) string) strftime.Appender {
		return strftime.AppendFunc(func(b []byte, t time.Time) []byte {
			return append(b, fn(t)...)
		})
	}
	number := func(fn func(time.Time) int) strftime.Appender {
		return strftime.AppendFunc(func(b []byte, t time.Time) []byte {
			return strconv.AppendInt(b, int64(fn(t)), 10)
		})
	}
	hour12 := func(t time.Time) int {
		if h := t.Hour() % 12; h != 0 {
			return h
		}
		return 12
	}
	return []strftime.Option{
		strftime.WithSpecification('a', text(func(t time.Time) string { return abbreviate(l.Days[t.Weekday()]) })),
		strftime.WithSpecification('A', text(func(t time.Time) string { return l.Days[t.Weekday()] })),
		strftime.WithSpecification('b', text(func(t time.Time) string { return abbreviate(l.Months[t.Month()-1]) })),
		strftime.WithSpecification('B', text(func(t time.Time) string { return l.Months[t.Month()-1] })),
		strftime.WithSpecification('p', text(l.meridiem)),
		strftime.WithSpecification('x', text(l.Date)),
		strftime.WithSpecification('X', text(l.Time)),
		strftime.WithSpecification('c', text(l.DateTime)),
		strftime.WithSpecification(unpadded['d'], number(time.Time.Day)),
		strftime.WithSpecification(unpadded['m'], number(func(t time.Time) int { return int(t.Month()) })),
		strftime.WithSpecification(unpadded['H'], number(time.Time.Hour)),
		strftime.WithSpecification(unpadded['I'], number(hour12)),
	}
}

func (l *Locale) meridiem(t time.Time) string {
	am, pm := l.AM, l.PM
	if am == "" {
		am, pm = "AM", "PM"
	}
	if t.Hour() < 12 {
		return am
	}
	return pm
}

// abbreviate returns the first three characters of a name. Names of three
// characters or fewer (and CJK month names) are returned unchanged.
func abbreviate(name string) string {
	r := []rune(name)
	if len(r) <= 3 || r[len(r)-1] == '月' || r[len(r)-1] == '월' {
		return name
	}
	return string(r[:3])
}

// Date formats t with the locale's numeric date pattern.
func (l *Locale) Date(t time.Time) string {
	return l.Strftime(t, l.DatePattern())
}

// Time formats t with the locale's time pattern.
func (l *Locale) Time(t time.Time) string {
	return l.Strftime(t, l.TimePattern())
}

// DateTime formats t as date followed by time.
func (l *Locale) DateTime(t time.Time) string {
	return l.Date(t) + " " + l.Time(t)
}
