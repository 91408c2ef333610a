package content

import (
	"regexp"
	"strings"
)

// Category is the part of speech of a vocabulary word.
type Category string

const (
	Noun      Category = "Noun"
	Verb      Category = "Verb"
	Adjective Category = "Adjective"
	Adverb    Category = "Adverb"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Noun, Verb, Adjective, Adverb:
		return true
	}
	return false
}

// Localized maps a language to a display string.
type Localized map[Language]string

// In returns the text for lang, falling back to English and then to any
// non-empty entry.
func (l Localized) In(lang Language) string {
	if s := l[lang]; s != "" {
		return s
	}
	if s := l[English]; s != "" {
		return s
	}
	for _, info := range languages {
		if s := l[info.Code]; s != "" {
			return s
		}
	}
	return ""
}

// Word is a vocabulary entry with one translation per language.
type Word struct {
	ID           string    `yaml:"id" json:"id"`
	Translations Localized `yaml:"translations" json:"translations"`
	Category     Category  `yaml:"category" json:"category"`
	Level        int       `yaml:"level" json:"level"`
}

// In returns the word's spelling in lang, or "" if it has none.
func (w Word) In(lang Language) string {
	return w.Translations[lang]
}

// GrammarKind is the answer mechanic of a grammar exercise.
type GrammarKind string

const (
	KindChoice             GrammarKind = "choice"
	KindOrdering           GrammarKind = "ordering"
	KindDialogueCompletion GrammarKind = "dialogue_completion"
)

// Valid reports whether k is a known kind.
func (k GrammarKind) Valid() bool {
	switch k {
	case KindChoice, KindOrdering, KindDialogueCompletion:
		return true
	}
	return false
}

// Sequenced reports whether answers are built token by token.
func (k GrammarKind) Sequenced() bool {
	return k == KindOrdering || k == KindDialogueCompletion
}

// GrammarExercise is a grammar question in a single target language.
type GrammarExercise struct {
	ID            string      `yaml:"id" json:"id"`
	Language      Language    `yaml:"language" json:"language"`
	Kind          GrammarKind `yaml:"kind" json:"kind"`
	Prompt        string      `yaml:"prompt" json:"prompt"`
	Translations  Localized   `yaml:"translations" json:"translations"`
	CorrectAnswer string      `yaml:"answer" json:"answer"`
	Options       []string    `yaml:"options" json:"options"`
	Topic         string      `yaml:"topic" json:"topic"`
	Level         int         `yaml:"level" json:"level"`
}

// AnswerSeparator joins the tokens of a sequenced answer.
const AnswerSeparator = ","

// Tokens splits the correct answer of a sequenced exercise into tokens.
func (g GrammarExercise) Tokens() []string {
	if g.CorrectAnswer == "" {
		return nil
	}
	return strings.Split(g.CorrectAnswer, AnswerSeparator)
}

var blankPattern = regexp.MustCompile(`\[\d+\]`)

// Blanks counts the numbered gaps ("[1]", "[2]", ...) in the prompt.
func (g GrammarExercise) Blanks() int {
	return len(blankPattern.FindAllString(g.Prompt, -1))
}

// DefaultDialogueSlots is the token count of a dialogue whose prompt
// carries no numbered blanks.
const DefaultDialogueSlots = 5

// RequiredTokens is how many tokens finalise an answer to g. Dialogue
// prompts without blanks take slots tokens. The count never exceeds the
// number of options.
func (g GrammarExercise) RequiredTokens(slots int) int {
	switch g.Kind {
	case KindOrdering:
		return len(g.Options)
	case KindDialogueCompletion:
		n := g.Blanks()
		if n == 0 {
			n = slots
		}
		return min(n, len(g.Options))
	}
	return 1
}

// Example is one labelled illustration inside a level briefing.
type Example struct {
	Label   Localized `yaml:"label" json:"label"`
	Content Localized `yaml:"content" json:"content"`
}

// LevelInfo is the briefing shown before a grammar level.
type LevelInfo struct {
	Title       Localized `yaml:"title" json:"title"`
	Explanation Localized `yaml:"explanation" json:"explanation"`
	Examples    []Example `yaml:"examples,omitempty" json:"examples,omitempty"`
}
