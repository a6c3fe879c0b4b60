package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders whole rupees with the rupee sign and Indian digit grouping.
func FormatINR(rupees int) string {
	return inrPrinter.Sprintf("₹%d", rupees)
}
