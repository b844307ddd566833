package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with digit grouping, e.g. 1234 -> "1,234".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func countLabel(n int) string {
	return "Loaded " + FormatCount(n) + " " + userNoun(n)
}

func userNoun(n int) string {
	if n == 1 {
		return "user"
	}
	return "users"
}
