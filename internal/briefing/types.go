package briefing

import "github.com/abhisek/lexplanet/internal/content"

// Source records where a briefing came from.
type Source string

const (
	SourceBank      Source = "bank"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Briefing is the explanation shown before a grammar level, already
// resolved to the learner's native language.
type Briefing struct {
	Level       int
	Target      content.Language
	Native      content.Language
	Title       string
	Explanation string
	Examples    []Example
	Source      Source
}

// Example is one labelled illustration. Content stays in the target
// language; Label is in the native language.
type Example struct {
	Label   string
	Content string
}

// Catalog is the content the service reads static briefings and
// exercise topics from. *content.Catalog satisfies it.
type Catalog interface {
	Briefing(target content.Language, level int) (content.LevelInfo, bool)
	GrammarByLevelAndLanguage(level int, lang content.Language) []content.GrammarExercise
}

type key struct {
	native, target content.Language
	level          int
}

func fromLevelInfo(info content.LevelInfo, native, target content.Language, level int) *Briefing {
	b := &Briefing{
		Level:       level,
		Target:      target,
		Native:      native,
		Title:       info.Title.In(native),
		Explanation: info.Explanation.In(native),
		Source:      SourceBank,
	}
	for _, ex := range info.Examples {
		b.Examples = append(b.Examples, Example{
			Label:   ex.Label.In(native),
			Content: ex.Content.In(target),
		})
	}
	return b
}
