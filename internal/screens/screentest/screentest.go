// Package screentest provides a small catalog, engines and key presses
// for screen tests.
package screentest

import (
	"math/rand/v2"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/session"
)

func word(id string, level int, en, fr, tr string) content.Word {
	return content.Word{
		ID:           id,
		Level:        level,
		Category:     content.Noun,
		Translations: content.Localized{content.English: en, content.French: fr, content.Turkish: tr},
	}
}

// Catalog has three words on each of levels 1 and 2 and two Turkish
// grammar exercises on level 1.
func Catalog() *content.Catalog {
	return content.NewCatalog(&content.Bank{
		Version:  "1.0.0",
		MaxLevel: 5,
		Words: []content.Word{
			word("cat", 1, "cat", "chat", "kedi"),
			word("dog", 1, "dog", "chien", "köpek"),
			word("bread", 1, "bread", "pain", "ekmek"),
			word("water", 2, "water", "eau", "su"),
			word("apple", 2, "apple", "pomme", "elma"),
			word("milk", 2, "milk", "lait", "süt"),
		},
		Grammar: []content.GrammarExercise{
			{
				ID: "g1", Language: content.Turkish, Kind: content.KindChoice, Level: 1,
				Prompt: "Ben öğrenci___.", CorrectAnswer: "yim", Options: []string{"yim", "sin", "iz"},
				Topic: "personal suffixes",
			},
			{
				ID: "g2", Language: content.Turkish, Kind: content.KindOrdering, Level: 1,
				Prompt: "I am going home.", CorrectAnswer: "Ben,eve,gidiyorum",
				Options: []string{"Ben", "eve", "gidiyorum"}, Topic: "word order",
			},
		},
		Briefings: map[content.Language]map[int]content.LevelInfo{
			content.Turkish: {1: {
				Title:       content.Localized{content.English: "Being something"},
				Explanation: content.Localized{content.English: "Add a personal suffix to the noun."},
				Examples: []content.Example{{
					Label:   content.Localized{content.English: "I am a student"},
					Content: content.Localized{content.Turkish: "Ben öğrenciyim"},
				}},
			}},
		},
	})
}

// Engine returns an engine over Catalog with a fixed seed and quick
// feedback. Nothing is persisted.
func Engine(t *testing.T) *session.Engine {
	t.Helper()
	return newEngine(nil)
}

func newEngine(speaker session.Speaker) *session.Engine {
	cfg := session.DefaultConfig()
	cfg.MaxLevel = 5
	return session.New(cfg, Catalog(), nil, speaker, rand.New(rand.NewPCG(7, 11)))
}

// Spoken is one recorded speech request.
type Spoken struct {
	Text, Lang string
}

// Recorder is a session.Speaker that remembers what it was asked to say.
type Recorder struct {
	mu    sync.Mutex
	calls []Spoken
}

func (r *Recorder) Speak(text, lang string, onComplete func()) {
	r.mu.Lock()
	r.calls = append(r.calls, Spoken{text, lang})
	r.mu.Unlock()
	if onComplete != nil {
		onComplete()
	}
}

// Calls returns the recorded requests in order.
func (r *Recorder) Calls() []Spoken {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Spoken(nil), r.calls...)
}

// Speaking returns an engine on the map for English speakers learning
// Turkish whose speech goes to the returned recorder.
func Speaking(t *testing.T, mode session.Mode) (*session.Engine, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	e := newEngine(rec)
	if err := e.Configure(content.English, content.Turkish, mode); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return e, rec
}

// Configured returns an engine on the map for English speakers
// learning Turkish in mode.
func Configured(t *testing.T, mode session.Mode) *session.Engine {
	t.Helper()
	e := Engine(t)
	if err := e.Configure(content.English, content.Turkish, mode); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return e
}

// Playing returns an engine mid-level on level 1 in mode.
func Playing(t *testing.T, mode session.Mode) *session.Engine {
	t.Helper()
	e := Configured(t, mode)
	if err := e.SelectLevel(1); err != nil {
		t.Fatalf("SelectLevel: %v", err)
	}
	if mode == session.ModeGrammar {
		if err := e.StartLesson(); err != nil {
			t.Fatalf("StartLesson: %v", err)
		}
	}
	return e
}

// Rune is a printable key press.
func Rune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Key is a special key press such as tea.KeyEnter.
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// IsSync runs cmd and reports whether it produced screen.SyncMsg.
func IsSync(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(screen.SyncMsg)
	return ok
}
