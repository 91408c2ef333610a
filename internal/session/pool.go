package session

import (
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/shuffle"
)

// distractorCount is how many wrong options accompany a vocabulary word.
const distractorCount = 2

// ContentSource is the read-only catalog the engine draws questions from.
// *content.Catalog satisfies it.
type ContentSource interface {
	WordsByLevel(level int) []content.Word
	GrammarByLevelAndLanguage(level int, lang content.Language) []content.GrammarExercise
	AllWords() []content.Word
}

// buildLevelPool returns every question for (level, mode, target) in a
// fresh random order, or a *NoContentError when there are none.
func (e *Engine) buildLevelPool(level int, mode Mode, target content.Language) ([]Question, error) {
	var pool []Question
	switch mode {
	case ModeVocabulary:
		for _, w := range e.content.WordsByLevel(level) {
			if w.In(target) == "" {
				continue
			}
			pool = append(pool, VocabularyQuestion{Word: w})
		}
	case ModeGrammar:
		for _, g := range e.content.GrammarByLevelAndLanguage(level, target) {
			pool = append(pool, GrammarQuestion{Exercise: g})
		}
	}
	if len(pool) == 0 {
		return nil, &NoContentError{Level: level, Mode: mode, Language: target}
	}

	if n := e.cfg.QuestionsPerLevel; n > 0 && n < len(pool) {
		return shuffle.Sample(e.rng, pool, n), nil
	}
	return shuffle.Shuffle(e.rng, pool), nil
}

// buildOptions returns the shuffled candidate answers for q and the
// number of tokens that finalise an answer.
func (e *Engine) buildOptions(q Question) (options []string, required int) {
	switch q := q.(type) {
	case VocabularyQuestion:
		expected := q.Word.In(e.st.Target)
		opts := append([]string{expected}, e.distractors(q.Word, expected)...)
		return shuffle.Shuffle(e.rng, opts), 1

	case GrammarQuestion:
		ex := q.Exercise
		return shuffle.Shuffle(e.rng, ex.Options), ex.RequiredTokens(e.cfg.DialogueSlots)
	}
	return nil, 0
}

// distractors draws up to distractorCount distinct wrong translations,
// preferring words from the same level and topping up from the whole
// catalog when the level is too small.
func (e *Engine) distractors(word content.Word, expected string) []string {
	seen := map[string]bool{expected: true}
	var out []string

	pick := func(candidates []content.Word) {
		for _, w := range shuffle.Shuffle(e.rng, candidates) {
			if len(out) == distractorCount {
				return
			}
			if w.ID == word.ID {
				continue
			}
			t := w.In(e.st.Target)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}

	pick(e.content.WordsByLevel(word.Level))
	if len(out) < distractorCount {
		pick(e.content.AllWords())
	}
	return out
}
