package shared

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatNumber renders v with Indonesian grouping, e.g. 1500000 -> "1.500.000"
// and 12.5 -> "12,5". Zero renders as "0".
func FormatNumber(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return idPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatRupiah renders v as "Rp 1.500.000".
func FormatRupiah(v float64) string {
	return "Rp " + FormatNumber(v)
}

// FormatDate renders t as dd/MM/yyyy.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatDateTime renders t as dd/MM/yyyy HH:mm.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// TitleWords turns "on_delivery" into "On Delivery".
func TitleWords(s string) string {
	if s == "" {
		return ""
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.Indonesian).String(strings.ReplaceAll(s, "_", " "))
}

// OrDash substitutes "-" for an empty display value.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
