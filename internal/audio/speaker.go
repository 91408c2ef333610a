// Package audio speaks prompts and answers aloud. Every Speaker returns
// immediately, never panics out to the caller and calls onComplete
// exactly once per request.
package audio

import (
	"log/slog"
	"sync"

	"github.com/abhisek/lexplanet/internal/content"
)

// Speaker plays text in the given language code ("en", "fr", "tr").
type Speaker interface {
	Speak(text, lang string, onComplete func())
}

// NopSpeaker discards every request.
type NopSpeaker struct{}

// Speak calls onComplete and does nothing else.
func (NopSpeaker) Speak(_, _ string, onComplete func()) {
	if onComplete != nil {
		onComplete()
	}
}

// once wraps fn so that only the first call runs it. A nil fn becomes a
// no-op.
func once(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	var o sync.Once
	return func() { o.Do(fn) }
}

// guard runs fn, converting a panic into a logged error. done is called
// whether fn returned or panicked.
func guard(name string, done func(), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("speaker panicked", "component", "audio", "speaker", name, "panic", r)
			done()
		}
	}()
	fn()
}

// localeOf maps a language code to its speech locale, passing unknown
// codes through.
func localeOf(lang string) string {
	return content.Language(lang).Locale()
}
