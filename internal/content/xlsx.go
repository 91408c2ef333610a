package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names and column layouts read by ImportXLSX. The first row of
// each sheet is a header and is skipped.
const (
	WordsSheet   = "words"
	GrammarSheet = "grammar"

	// OptionSeparator splits the options cell of the grammar sheet.
	OptionSeparator = "|"
)

var (
	wordColumns    = []string{"id", "en", "fr", "tr", "category", "level"}
	grammarColumns = []string{"id", "language", "kind", "prompt", "en", "fr", "tr", "answer", "options", "topic", "level"}
)

// WordColumns is the header row expected on the words sheet.
func WordColumns() []string { return append([]string(nil), wordColumns...) }

// GrammarColumns is the header row expected on the grammar sheet.
func GrammarColumns() []string { return append([]string(nil), grammarColumns...) }

// ImportXLSX reads words and grammar exercises from a spreadsheet
// authored by content editors. Either sheet may be absent. The result
// is not validated; callers merge it into a Bank and call Validate.
func ImportXLSX(path string) (words []Word, grammar []GrammarExercise, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(WordsSheet); idx >= 0 {
		rows, err := f.GetRows(WordsSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s sheet: %w", WordsSheet, err)
		}
		words, err = parseWordRows(rows)
		if err != nil {
			return nil, nil, err
		}
	}

	if idx, _ := f.GetSheetIndex(GrammarSheet); idx >= 0 {
		rows, err := f.GetRows(GrammarSheet)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s sheet: %w", GrammarSheet, err)
		}
		grammar, err = parseGrammarRows(rows)
		if err != nil {
			return nil, nil, err
		}
	}

	return words, grammar, nil
}

func parseWordRows(rows [][]string) ([]Word, error) {
	var out []Word
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		cell := cells(row, len(wordColumns))
		level, err := strconv.Atoi(cell[5])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: level %q: %w", WordsSheet, i+1, cell[5], err)
		}
		out = append(out, Word{
			ID: cell[0],
			Translations: Localized{
				English: cell[1],
				French:  cell[2],
				Turkish: cell[3],
			},
			Category: Category(cell[4]),
			Level:    level,
		})
	}
	return out, nil
}

func parseGrammarRows(rows [][]string) ([]GrammarExercise, error) {
	var out []GrammarExercise
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		cell := cells(row, len(grammarColumns))
		level, err := strconv.Atoi(cell[10])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: level %q: %w", GrammarSheet, i+1, cell[10], err)
		}
		var options []string
		for _, o := range strings.Split(cell[8], OptionSeparator) {
			if o = strings.TrimSpace(o); o != "" {
				options = append(options, o)
			}
		}
		translations := Localized{}
		for j, lang := range []Language{English, French, Turkish} {
			if s := cell[4+j]; s != "" {
				translations[lang] = s
			}
		}
		out = append(out, GrammarExercise{
			ID:       cell[0],
			Language: Language(strings.ToLower(cell[1])),
			Kind:     GrammarKind(cell[2]),
			// Editors type line breaks inside the cell; keep them.
			Prompt:        strings.ReplaceAll(cell[3], "\r\n", "\n"),
			Translations:  translations,
			CorrectAnswer: cell[7],
			Options:       options,
			Topic:         cell[9],
			Level:         level,
		})
	}
	return out, nil
}

// cells pads row to n columns and trims every value.
func cells(row []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n && i < len(row); i++ {
		out[i] = strings.TrimSpace(row[i])
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Merge adds words and exercises to b, replacing entries with the same
// id. It returns how many entries were added and replaced.
func (b *Bank) Merge(words []Word, grammar []GrammarExercise) (added, replaced int) {
	wordIdx := make(map[string]int, len(b.Words))
	for i, w := range b.Words {
		wordIdx[w.ID] = i
	}
	for _, w := range words {
		if i, ok := wordIdx[w.ID]; ok {
			b.Words[i] = w
			replaced++
			continue
		}
		wordIdx[w.ID] = len(b.Words)
		b.Words = append(b.Words, w)
		added++
	}

	exIdx := make(map[string]int, len(b.Grammar))
	for i, g := range b.Grammar {
		exIdx[g.ID] = i
	}
	for _, g := range grammar {
		if i, ok := exIdx[g.ID]; ok {
			b.Grammar[i] = g
			replaced++
			continue
		}
		exIdx[g.ID] = len(b.Grammar)
		b.Grammar = append(b.Grammar, g)
		added++
	}
	return added, replaced
}
