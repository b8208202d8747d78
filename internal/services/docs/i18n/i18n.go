// Package i18n holds the user-facing copy of the document manager.
//
// Every message shown to a user, including the one-shot outcome notices, is
// registered under a stable key and formatted through a message printer.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default returns the language used for all user-facing copy.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Sprintf formats the message registered under key in the default language.
func Sprintf(key string, args ...any) string {
	return Printer(Default()).Sprintf(key, args...)
}
