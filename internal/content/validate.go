package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const bankSchemaURL = "schema://lexplanet/bank.schema.json"

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// ValidationError lists every problem found in a content pack.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid content bank: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid content bank (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		raw, err := dataFS.ReadFile("data/bank.schema.json")
		if err != nil {
			bankSchemaErr = fmt.Errorf("read bank schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, bankSchemaErr
}

// validateSchema checks the raw YAML document against the bank schema.
// YAML is normalised to JSON values first so numeric map keys and
// integer scalars compare the way the schema expects.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode bank: %w", err)
	}
	if doc == nil {
		return &ValidationError{Problems: []string{"document is empty"}}
	}

	js, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return fmt.Errorf("normalise bank: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(js))
	if err != nil {
		return fmt.Errorf("normalise bank: %w", err)
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(inst); err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	return nil
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

// Validate runs the semantic checks the schema cannot express.
func (b *Bank) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !semver.IsValid(CanonicalVersion(b.Version)) {
		addf("version %q is not a semantic version", b.Version)
	}
	maxLevel := b.Levels()

	seen := make(map[string]bool)
	for _, w := range b.Words {
		if seen[w.ID] {
			addf("duplicate id %q", w.ID)
		}
		seen[w.ID] = true
		if w.Level < 1 || w.Level > maxLevel {
			addf("word %s: level %d outside 1..%d", w.ID, w.Level, maxLevel)
		}
		if !w.Category.Valid() {
			addf("word %s: unknown category %q", w.ID, w.Category)
		}
		for _, info := range languages {
			if strings.TrimSpace(w.Translations[info.Code]) == "" {
				addf("word %s: missing %s translation", w.ID, info.Code)
			}
		}
	}

	for _, g := range b.Grammar {
		if seen[g.ID] {
			addf("duplicate id %q", g.ID)
		}
		seen[g.ID] = true
		if g.Level < 1 || g.Level > maxLevel {
			addf("exercise %s: level %d outside 1..%d", g.ID, g.Level, maxLevel)
		}
		if !g.Language.Valid() {
			addf("exercise %s: unknown language %q", g.ID, g.Language)
		}
		for _, p := range checkExercise(g) {
			addf("exercise %s: %s", g.ID, p)
		}
	}

	for lang, byLevel := range b.Briefings {
		if !lang.Valid() {
			addf("briefings: unknown language %q", lang)
		}
		for level, info := range byLevel {
			if level < 1 || level > maxLevel {
				addf("briefing %s/%d: level outside 1..%d", lang, level, maxLevel)
			}
			if info.Title.In(English) == "" {
				addf("briefing %s/%d: missing title", lang, level)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkExercise(g GrammarExercise) []string {
	var problems []string
	switch g.Kind {
	case KindChoice:
		found := false
		for _, o := range g.Options {
			if o == g.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf("answer %q is not among the options", g.CorrectAnswer))
		}
	case KindOrdering, KindDialogueCompletion:
		available := make(map[string]int, len(g.Options))
		for _, o := range g.Options {
			if strings.Contains(o, AnswerSeparator) {
				problems = append(problems, fmt.Sprintf("option %q contains the answer separator %q", o, AnswerSeparator))
			}
			available[o]++
		}
		for _, tok := range g.Tokens() {
			if tok == "" {
				problems = append(problems, fmt.Sprintf("answer %q has an empty token", g.CorrectAnswer))
				continue
			}
			if available[tok] == 0 {
				problems = append(problems, fmt.Sprintf("answer token %q is not among the options", tok))
				continue
			}
			available[tok]--
		}
		if g.Kind == KindOrdering && len(g.Tokens()) != len(g.Options) {
			problems = append(problems, fmt.Sprintf("ordering answer has %d tokens for %d options", len(g.Tokens()), len(g.Options)))
		}
		if g.Kind == KindDialogueCompletion {
			tokens := len(g.Tokens())
			if blanks := g.Blanks(); blanks > 0 && blanks != tokens {
				problems = append(problems, fmt.Sprintf("prompt has %d blanks but answer has %d tokens", blanks, tokens))
			} else if blanks == 0 {
				if need := g.RequiredTokens(DefaultDialogueSlots); need != tokens {
					problems = append(problems, fmt.Sprintf("prompt has no blanks, so %d tokens are required but answer has %d", need, tokens))
				}
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown kind %q", g.Kind))
	}
	return problems
}

// CanonicalVersion adds the "v" prefix semver expects to a pack version.
func CanonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
