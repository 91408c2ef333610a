package content

import (
	"fmt"
	"strings"
)

// Language is a two-letter content language code.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Turkish Language = "tr"
)

// LanguageInfo describes a supported language for display and speech.
type LanguageInfo struct {
	Code   Language
	Name   string
	Flag   string
	Locale string // BCP-47 tag used for speech synthesis
}

var languages = []LanguageInfo{
	{Code: English, Name: "English", Flag: "🇬🇧", Locale: "en-US"},
	{Code: French, Name: "Français", Flag: "🇫🇷", Locale: "fr-FR"},
	{Code: Turkish, Name: "Türkçe", Flag: "🇹🇷", Locale: "tr-TR"},
}

// Languages returns the supported languages in display order.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// ParseLanguage accepts a code such as "tr" or "TR".
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown language %q", s)
	}
	return l, nil
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, info := range languages {
		if info.Code == l {
			return true
		}
	}
	return false
}

// Info returns display details for l. Unknown codes get the code as name.
func (l Language) Info() LanguageInfo {
	for _, info := range languages {
		if info.Code == l {
			return info
		}
	}
	return LanguageInfo{Code: l, Name: string(l), Locale: string(l)}
}

// Locale returns the speech locale for l.
func (l Language) Locale() string {
	return l.Info().Locale
}
