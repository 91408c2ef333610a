// Package i18n holds the interface strings of the game in every
// supported language and language-aware text casing.
package i18n

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/lexplanet/internal/content"
)

// Key names one interface string.
type Key string

// T returns the string for key in lang, falling back to English and
// finally to the key itself.
func T(lang content.Language, key Key) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[content.English][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key in lang with args.
func Tf(lang content.Language, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Tag returns the x/text language tag for lang.
func Tag(lang content.Language) language.Tag {
	switch lang {
	case content.Turkish:
		return language.Turkish
	case content.French:
		return language.French
	default:
		return language.English
	}
}

// Capitalize upper-cases the first letter of s using lang's rules, so
// Turkish "istanbul" becomes "İstanbul".
func Capitalize(lang content.Language, s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(Tag(lang)).String(string(r)) + s[size:]
}

// Upper upper-cases s using lang's rules.
func Upper(lang content.Language, s string) string {
	return cases.Upper(Tag(lang)).String(s)
}

// Title title-cases every word of s using lang's rules.
func Title(lang content.Language, s string) string {
	return cases.Title(Tag(lang)).String(s)
}
