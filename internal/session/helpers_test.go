package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/store"
)

type fakeProgress struct {
	loaded  store.Progress
	loadErr error
	saveErr error
	saves   []store.Progress
	resets  int
}

func (f *fakeProgress) LoadProgress(context.Context) (store.Progress, error) {
	return f.loaded, f.loadErr
}

func (f *fakeProgress) SaveProgress(_ context.Context, p store.Progress) error {
	f.saves = append(f.saves, p)
	return f.saveErr
}

func (f *fakeProgress) ResetProgress(context.Context) error {
	f.resets++
	return nil
}

// fakeEvents records appends; query methods are unused by the engine.
type fakeEvents struct {
	store.EventRepo
	answers []store.AnswerEventData
	levels  []store.LevelEventData
}

func (f *fakeEvents) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	f.answers = append(f.answers, d)
	return nil
}

func (f *fakeEvents) AppendLevelEvent(_ context.Context, d store.LevelEventData) error {
	f.levels = append(f.levels, d)
	return nil
}

func (f *fakeEvents) actions() []string {
	var out []string
	for _, l := range f.levels {
		out = append(out, l.Action)
	}
	return out
}

type spoken struct {
	text, lang string
}

type fakeSpeaker struct {
	calls []spoken
}

func (f *fakeSpeaker) Speak(text, lang string, onComplete func()) {
	f.calls = append(f.calls, spoken{text, lang})
	if onComplete != nil {
		onComplete()
	}
}

var errBroken = errors.New("broken")

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func word(id string, level int, en, fr, tr string) content.Word {
	return content.Word{
		ID:           id,
		Level:        level,
		Category:     content.Noun,
		Translations: content.Localized{content.English: en, content.French: fr, content.Turkish: tr},
	}
}

func catalogOf(words []content.Word, grammar []content.GrammarExercise) *content.Catalog {
	return content.NewCatalog(&content.Bank{Version: "1.0.0", Words: words, Grammar: grammar})
}

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return c
}

// newVocabEngine returns an engine on the map with tr→fr vocabulary.
func newVocabEngine(t *testing.T, src ContentSource, progress store.ProgressStore, opts ...Option) *Engine {
	t.Helper()
	e := New(DefaultConfig(), src, progress, nil, seeded(1), opts...)
	if err := e.Configure(content.Turkish, content.French, ModeVocabulary); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return e
}

// answer submits a correct or wrong answer to the active question and
// returns the outcome.
func answer(t *testing.T, e *Engine, correct bool) *Outcome {
	t.Helper()
	st := e.Snapshot()
	if st.Active == nil {
		t.Fatal("no active question")
	}
	expected := ExpectedAnswer(st.Active, st.Target)

	if Sequenced(st.Active) {
		tokens := st.Active.(GrammarQuestion).Exercise.Tokens()
		if !correct {
			for i := 1; i < len(tokens); i++ {
				if tokens[i] != tokens[0] {
					tokens[0], tokens[i] = tokens[i], tokens[0]
					break
				}
			}
		}
		var out *Outcome
		for i, tok := range tokens {
			out = e.Submit(tok)
			if i < len(tokens)-1 && out != nil {
				t.Fatalf("token %d finalised early", i)
			}
		}
		if out == nil {
			t.Fatal("sequenced answer did not finalise")
		}
		return out
	}

	token := expected
	if !correct {
		for _, o := range st.Options {
			if o != expected {
				token = o
				break
			}
		}
	}
	out := e.Submit(token)
	if out == nil {
		t.Fatalf("Submit(%q) ignored", token)
	}
	return out
}

// play answers one question per entry in results, continuing between
// questions, and returns the last outcome.
func play(t *testing.T, e *Engine, results []bool) *Outcome {
	t.Helper()
	var out *Outcome
	for i, ok := range results {
		out = answer(t, e, ok)
		if out.LevelOver {
			if i != len(results)-1 {
				t.Fatalf("level ended after %d answers, expected %d", i+1, len(results))
			}
			break
		}
		if !e.Continue(out.Ticket) {
			t.Fatalf("Continue after answer %d refused", i+1)
		}
	}
	return out
}

func repeat(ok bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = ok
	}
	return out
}
