package session

import "github.com/abhisek/lexplanet/internal/content"

// Question is one item of a level pool: either a vocabulary word or a
// grammar exercise, never both.
type Question interface {
	ID() string
	Level() int
	isQuestion()
}

// VocabularyQuestion asks for the target-language translation of Word.
type VocabularyQuestion struct {
	Word content.Word
}

func (q VocabularyQuestion) ID() string { return q.Word.ID }
func (q VocabularyQuestion) Level() int { return q.Word.Level }
func (VocabularyQuestion) isQuestion()  {}

// GrammarQuestion serves a grammar exercise written in the target language.
type GrammarQuestion struct {
	Exercise content.GrammarExercise
}

func (q GrammarQuestion) ID() string { return q.Exercise.ID }
func (q GrammarQuestion) Level() int { return q.Exercise.Level }
func (GrammarQuestion) isQuestion()  {}

// Sequenced reports whether q is answered by building a token sequence.
func Sequenced(q Question) bool {
	g, ok := q.(GrammarQuestion)
	return ok && g.Exercise.Kind.Sequenced()
}

// PromptText is the text shown (and spoken) as the question, with the
// language it is written in. Vocabulary prompts are in the native
// language; grammar prompts are in the target language.
func PromptText(q Question, native, target content.Language) (string, content.Language) {
	switch q := q.(type) {
	case VocabularyQuestion:
		return q.Word.In(native), native
	case GrammarQuestion:
		return q.Exercise.Prompt, target
	}
	return "", native
}

// ExpectedAnswer is the exact string a correct submission must equal.
func ExpectedAnswer(q Question, target content.Language) string {
	switch q := q.(type) {
	case VocabularyQuestion:
		return q.Word.In(target)
	case GrammarQuestion:
		return q.Exercise.CorrectAnswer
	}
	return ""
}
