package ui

import (
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/money"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount like $1,234.50.
func FormatUSD(a money.Amount) string {
	rounded := a.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatDateUS turns YYYY-MM-DD into MM/DD/YYYY. Anything else is returned
// unchanged.
func FormatDateUS(iso string) string {
	t, err := time.Parse(expenseDatamodel.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("01/02/2006")
}

// ErrorMessage prefers the error's own text and falls back when it is empty.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}

func StatusLabel(status string) string {
	if status == "paid" {
		return "Paid"
	}
	return "Open"
}
