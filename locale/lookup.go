package locale

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	byCode  = map[string]*Locale{}
	tags    []language.Tag
	matcher language.Matcher
)

func init() {
	for _, l := range table {
		byCode[strings.ToLower(l.Code)] = l
		tags = append(tags, language.MustParse(l.Code))
	}
	matcher = language.NewMatcher(tags)
}

// Lookup returns the table entry for code. Exact codes match directly;
// otherwise the closest supported locale is chosen (so "de-AT" selects
// de-DE). When nothing matches, Lookup returns the default locale and
// false.
func Lookup(code string) (*Locale, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if norm == "" {
		return table[0], true
	}
	if l, ok := byCode[norm]; ok {
		return l, true
	}
	tag, err := language.Parse(norm)
	if err != nil {
		return table[0], false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return table[0], false
	}
	return table[idx], true
}

// Tag returns the BCP 47 tag of l.
func (l *Locale) Tag() language.Tag {
	return language.MustParse(l.Code)
}

// Language returns the base language subtag, e.g. "de" for de-DE.
func (l *Locale) Language() string {
	base, _ := l.Tag().Base()
	return base.String()
}

// Region returns the region subtag, e.g. "DE" for de-DE.
func (l *Locale) Region() string {
	region, _ := l.Tag().Region()
	return region.String()
}
