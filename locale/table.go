package locale

// DateOrder is the order of the day, month and year fields.
type DateOrder int

const (
	MDY DateOrder = iota
	DMY
	YMD
)

// Locale is one row of the formatting table.
type Locale struct {
	Code    string
	Decimal string
	Group   string
	// IndianGrouping groups the integer part 3;2 (12,34,567).
	IndianGrouping bool

	DateOrder DateOrder
	DateSep   string
	Hour12    bool
	AM, PM    string

	// CurrencyAfter places the symbol after the amount; CurrencySpace
	// separates symbol and amount with a space.
	CurrencyAfter bool
	CurrencySpace bool

	Months []string
	Days   []string
}

// DatePattern returns the locale's numeric date pattern, e.g. "%m/%d/%Y".
func (l *Locale) DatePattern() string {
	s := l.DateSep
	switch l.DateOrder {
	case DMY:
		return "%d" + s + "%m" + s + "%Y"
	case YMD:
		return "%Y" + s + "%m" + s + "%d"
	default:
		return "%m" + s + "%d" + s + "%Y"
	}
}

// TimePattern returns the locale's time pattern.
func (l *Locale) TimePattern() string {
	if l.Hour12 {
		return "%-I:%M %p"
	}
	return "%H:%M"
}

// Default is the fallback locale code.
const Default = "en-US"

var (
	englishMonths = []string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	englishDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	germanMonths = []string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"}
	germanDays = []string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

	frenchMonths = []string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"}
	frenchDays = []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

	spanishMonths = []string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	spanishDays = []string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

	italianMonths = []string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
	italianDays = []string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"}

	portugueseMonths = []string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}
	portugueseDays = []string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

	dutchMonths = []string{"januari", "februari", "maart", "april", "mei", "juni",
		"juli", "augustus", "september", "oktober", "november", "december"}
	dutchDays = []string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"}

	swedishMonths = []string{"januari", "februari", "mars", "april", "maj", "juni",
		"juli", "augusti", "september", "oktober", "november", "december"}
	swedishDays = []string{"söndag", "måndag", "tisdag", "onsdag", "torsdag", "fredag", "lördag"}

	russianMonths = []string{"январь", "февраль", "март", "апрель", "май", "июнь",
		"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь"}
	russianDays = []string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"}

	cjkMonths = []string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"}
	koreanMonths = []string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"}
	japaneseDays = []string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}
	chineseDays  = []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}
	koreanDays   = []string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
)

// table lists the supported locales. The first entry is the default.
var table = []*Locale{
	{Code: "en-US", Decimal: ".", Group: ",", DateOrder: MDY, DateSep: "/", Hour12: true, AM: "AM", PM: "PM",
		Months: englishMonths, Days: englishDays},
	{Code: "en-GB", Decimal: ".", Group: ",", DateOrder: DMY, DateSep: "/",
		Months: englishMonths, Days: englishDays},
	{Code: "de-DE", Decimal: ",", Group: ".", DateOrder: DMY, DateSep: ".",
		CurrencyAfter: true, CurrencySpace: true, Months: germanMonths, Days: germanDays},
	{Code: "fr-FR", Decimal: ",", Group: "\u202f", DateOrder: DMY, DateSep: "/",
		CurrencyAfter: true, CurrencySpace: true, Months: frenchMonths, Days: frenchDays},
	{Code: "es-ES", Decimal: ",", Group: ".", DateOrder: DMY, DateSep: "/",
		CurrencyAfter: true, CurrencySpace: true, Months: spanishMonths, Days: spanishDays},
	{Code: "it-IT", Decimal: ",", Group: ".", DateOrder: DMY, DateSep: "/",
		CurrencyAfter: true, CurrencySpace: true, Months: italianMonths, Days: italianDays},
	{Code: "pt-BR", Decimal: ",", Group: ".", DateOrder: DMY, DateSep: "/",
		CurrencySpace: true, Months: portugueseMonths, Days: portugueseDays},
	{Code: "nl-NL", Decimal: ",", Group: ".", DateOrder: DMY, DateSep: "-",
		CurrencySpace: true, Months: dutchMonths, Days: dutchDays},
	{Code: "sv-SE", Decimal: ",", Group: "\u00a0", DateOrder: YMD, DateSep: "-",
		CurrencyAfter: true, CurrencySpace: true, Months: swedishMonths, Days: swedishDays},
	{Code: "ja-JP", Decimal: ".", Group: ",", DateOrder: YMD, DateSep: "/",
		Months: cjkMonths, Days: japaneseDays},
	{Code: "zh-CN", Decimal: ".", Group: ",", DateOrder: YMD, DateSep: "/",
		Months: cjkMonths, Days: chineseDays},
	{Code: "ko-KR", Decimal: ".", Group: ",", DateOrder: YMD, DateSep: ".", Hour12: true, AM: "오전", PM: "오후",
		Months: koreanMonths, Days: koreanDays},
	{Code: "ru-RU", Decimal: ",", Group: "\u00a0", DateOrder: DMY, DateSep: ".",
		CurrencyAfter: true, CurrencySpace: true, Months: russianMonths, Days: russianDays},
	{Code: "hi-IN", Decimal: ".", Group: ",", IndianGrouping: true, DateOrder: DMY, DateSep: "/", Hour12: true, AM: "am", PM: "pm",
		Months: englishMonths, Days: englishDays},
	{Code: "ar-SA", Decimal: ".", Group: ",", DateOrder: DMY, DateSep: "/", Hour12: true, AM: "ص", PM: "م",
		CurrencyAfter: true, CurrencySpace: true, Months: englishMonths, Days: englishDays},
}

// symbols maps ISO 4217 codes to display symbols. Codes missing here
// display as the code itself.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"KRW": "₩",
	"INR": "₹",
	"RUB": "₽",
	"BRL": "R$",
	"SEK": "kr",
	"CHF": "CHF",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"SAR": "ر.س",
}

// Codes returns the supported locale codes, default first.
func Codes() []string {
	codes := make([]string, len(table))
	for i, l := range table {
		codes[i] = l.Code
	}
	return codes
}
