package view

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

// SetLanguage makes Sprintf format with the conventions of tag, for
// example digit grouping. The zero Tag restores plain fmt formatting.
func SetLanguage(tag language.Tag) {
	if tag == language.Und {
		printer = nil
		return
	}
	printer = message.NewPrinter(tag)
}

// Sprintf formats interpolated text.
func Sprintf(format string, args ...any) string {
	if printer != nil {
		return printer.Sprintf(format, args...)
	}
	return fmt.Sprintf(format, args...)
}

// Sprint formats a single attribute value.
func Sprint(v any) string {
	if printer != nil {
		return printer.Sprint(v)
	}
	return fmt.Sprint(v)
}
