package render

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// Formatter renders money and quantities for one locale. Amounts are always
// US dollars; only grouping and decimal marks follow the locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-US" or
// "de-DE". An empty locale selects DefaultLocale.
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the formatter's language tag as a string.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Money formats v as dollars with two decimals, e.g. "$31.48" or "−$8.52".
// Non-finite values render as "$—".
func (f *Formatter) Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$—"
	}
	sign := ""
	if v < 0 {
		sign = "−"
		v = -v
	}
	return sign + "$" + f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// Num formats v with at most digits fraction digits. Non-finite values
// render as "—".
func (f *Formatter) Num(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
}

// Hours formats v as "1,234.5 hrs".
func (f *Formatter) Hours(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return f.Num(v, 1) + " hrs"
}

// Pct formats v as "21.3%".
func (f *Formatter) Pct(v float64) string {
	return f.Num(v, 1) + "%"
}
