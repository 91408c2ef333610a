package content

import (
	"fmt"
	"slices"
)

type grammarKey struct {
	level int
	lang  Language
}

// Catalog is the read-only query surface over a Bank.
type Catalog struct {
	version      string
	maxLevel     int
	words        []Word
	wordsByLevel map[int][]Word
	wordByID     map[string]Word
	grammar      map[grammarKey][]GrammarExercise
	exerciseByID map[string]GrammarExercise
	briefings    map[Language]map[int]LevelInfo
	vocabTitles  map[int]Localized
}

// NewCatalog indexes b. The bank must already be validated.
func NewCatalog(b *Bank) *Catalog {
	c := &Catalog{
		version:      b.Version,
		maxLevel:     b.Levels(),
		words:        slices.Clone(b.Words),
		wordsByLevel: make(map[int][]Word),
		wordByID:     make(map[string]Word, len(b.Words)),
		grammar:      make(map[grammarKey][]GrammarExercise),
		exerciseByID: make(map[string]GrammarExercise, len(b.Grammar)),
		briefings:    b.Briefings,
		vocabTitles:  b.VocabTitles,
	}
	for _, w := range b.Words {
		c.wordsByLevel[w.Level] = append(c.wordsByLevel[w.Level], w)
		c.wordByID[w.ID] = w
	}
	for _, g := range b.Grammar {
		k := grammarKey{level: g.Level, lang: g.Language}
		c.grammar[k] = append(c.grammar[k], g)
		c.exerciseByID[g.ID] = g
	}
	return c
}

// Default builds a catalog from the embedded content pack.
func Default() (*Catalog, error) {
	b, err := DefaultBank()
	if err != nil {
		return nil, err
	}
	return NewCatalog(b), nil
}

// Open builds a catalog from path, or from the embedded pack when path
// is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := LoadBank(path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return NewCatalog(b), nil
}

// Version is the semantic version of the loaded pack.
func (c *Catalog) Version() string { return c.version }

// MaxLevel is the number of levels the pack declares.
func (c *Catalog) MaxLevel() int { return c.maxLevel }

// WordsByLevel returns the words tagged with level.
func (c *Catalog) WordsByLevel(level int) []Word {
	return slices.Clone(c.wordsByLevel[level])
}

// GrammarByLevelAndLanguage returns exercises for level written in lang.
func (c *Catalog) GrammarByLevelAndLanguage(level int, lang Language) []GrammarExercise {
	return slices.Clone(c.grammar[grammarKey{level: level, lang: lang}])
}

// AllWords returns every word in the pack.
func (c *Catalog) AllWords() []Word {
	return slices.Clone(c.words)
}

// Word looks a word up by id.
func (c *Catalog) Word(id string) (Word, bool) {
	w, ok := c.wordByID[id]
	return w, ok
}

// Exercise looks a grammar exercise up by id.
func (c *Catalog) Exercise(id string) (GrammarExercise, bool) {
	g, ok := c.exerciseByID[id]
	return g, ok
}

// Briefing returns the static briefing for a grammar level in target.
func (c *Catalog) Briefing(target Language, level int) (LevelInfo, bool) {
	info, ok := c.briefings[target][level]
	return info, ok
}

// VocabTitle returns the title shown for a vocabulary level.
func (c *Catalog) VocabTitle(level int) (Localized, bool) {
	t, ok := c.vocabTitles[level]
	return t, ok
}

// WordLevels lists the levels that have at least one word, ascending.
func (c *Catalog) WordLevels() []int {
	levels := make([]int, 0, len(c.wordsByLevel))
	for l := range c.wordsByLevel {
		levels = append(levels, l)
	}
	slices.Sort(levels)
	return levels
}

// GrammarLevels lists the levels with exercises in lang, ascending.
func (c *Catalog) GrammarLevels(lang Language) []int {
	var levels []int
	for k := range c.grammar {
		if k.lang == lang {
			levels = append(levels, k.level)
		}
	}
	slices.Sort(levels)
	return levels
}

// Counts summarises the pack size for CLI output.
func (c *Catalog) Counts() (words, exercises, briefings int) {
	for _, byLevel := range c.briefings {
		briefings += len(byLevel)
	}
	return len(c.words), len(c.exerciseByID), briefings
}
