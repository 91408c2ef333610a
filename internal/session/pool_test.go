package session

import (
	"slices"
	"testing"

	"github.com/abhisek/lexplanet/internal/content"
)

func TestDistractors_DistinctAndExcludeExpected(t *testing.T) {
	e := newVocabEngine(t, defaultCatalog(t), nil)
	for _, w := range defaultCatalog(t).WordsByLevel(2) {
		expected := w.In(content.French)
		got := e.distractors(w, expected)
		if len(got) != distractorCount {
			t.Fatalf("%s: distractors = %v, want %d", w.ID, got, distractorCount)
		}
		if slices.Contains(got, expected) {
			t.Errorf("%s: distractors %v contain the answer", w.ID, got)
		}
		if got[0] == got[1] {
			t.Errorf("%s: duplicate distractors %v", w.ID, got)
		}
	}
}

func TestDistractors_TopUpFromCatalog(t *testing.T) {
	words := []content.Word{
		word("lonely", 5, "Moon", "Lune", "Ay"),
		word("a", 1, "Sun", "Soleil", "Güneş"),
		word("b", 1, "Star", "Étoile", "Yıldız"),
	}
	e := New(DefaultConfig(), catalogOf(words, nil), nil, nil, seeded(2))
	if err := e.Configure(content.English, content.French, ModeVocabulary); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	got := e.distractors(words[0], "Lune")
	slices.Sort(got)
	if want := []string{"Soleil", "Étoile"}; !slices.Equal(got, want) {
		t.Errorf("distractors = %v, want %v", got, want)
	}
}

func TestDistractors_TinyCatalog(t *testing.T) {
	words := []content.Word{word("only", 1, "Moon", "Lune", "Ay")}
	e := New(DefaultConfig(), catalogOf(words, nil), nil, nil, seeded(2))
	if err := e.Configure(content.English, content.French, ModeVocabulary); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := e.distractors(words[0], "Lune"); len(got) != 0 {
		t.Errorf("distractors = %v, want none", got)
	}

	if err := e.SelectLevel(1); err != nil {
		t.Fatalf("SelectLevel: %v", err)
	}
	if got := e.Snapshot().Options; !slices.Equal(got, []string{"Lune"}) {
		t.Errorf("options = %v, want only the answer", got)
	}
}

func TestBuildOptions_GrammarKinds(t *testing.T) {
	tests := []struct {
		name string
		ex   content.GrammarExercise
		want int
	}{
		{"choice", content.GrammarExercise{Kind: content.KindChoice, CorrectAnswer: "a", Options: []string{"a", "b", "c"}}, 1},
		{"ordering", content.GrammarExercise{Kind: content.KindOrdering, CorrectAnswer: "a,b,c", Options: []string{"c", "a", "b"}}, 3},
		{"dialogue blanks", content.GrammarExercise{Kind: content.KindDialogueCompletion, Prompt: "[1] [2]", CorrectAnswer: "a,b", Options: []string{"a", "b", "c"}}, 2},
		{"dialogue capped", content.GrammarExercise{Kind: content.KindDialogueCompletion, Prompt: "no gaps", CorrectAnswer: "a,b", Options: []string{"a", "b"}}, 2},
	}

	e := New(DefaultConfig(), catalogOf(nil, nil), nil, nil, seeded(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, required := e.buildOptions(GrammarQuestion{Exercise: tt.ex})
			if required != tt.want {
				t.Errorf("required = %d, want %d", required, tt.want)
			}
			a, b := slices.Clone(opts), slices.Clone(tt.ex.Options)
			slices.Sort(a)
			slices.Sort(b)
			if !slices.Equal(a, b) {
				t.Errorf("options = %v, want a permutation of %v", opts, tt.ex.Options)
			}
		})
	}
}

func TestBuildLevelPool_SkipsUntranslatedWords(t *testing.T) {
	words := []content.Word{
		word("a", 1, "Sun", "Soleil", "Güneş"),
		{ID: "b", Level: 1, Category: content.Noun, Translations: content.Localized{content.English: "Star"}},
	}
	e := New(DefaultConfig(), catalogOf(words, nil), nil, nil, seeded(1))
	if err := e.Configure(content.English, content.Turkish, ModeVocabulary); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	pool, err := e.buildLevelPool(1, ModeVocabulary, content.Turkish)
	if err != nil {
		t.Fatalf("buildLevelPool: %v", err)
	}
	if len(pool) != 1 || pool[0].ID() != "a" {
		t.Errorf("pool = %v, want only a", pool)
	}
}
