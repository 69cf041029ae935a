package billing

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "02/01/2006"

var vndPrinter = message.NewPrinter(language.Vietnamese)

// FormatCurrency renders a VND amount with vi-VN digit grouping, e.g. "500.000 ₫"
func FormatCurrency(amount int64) string {
	return vndPrinter.Sprintf("%d", amount) + " ₫"
}

// FormatDate renders a date as dd/mm/yyyy
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
