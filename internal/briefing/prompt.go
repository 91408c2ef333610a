package briefing

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexplanet/internal/content"
)

const systemPrompt = `You write short, friendly grammar briefings for a language-learning game. Each briefing introduces the grammar needed for one level before the learner answers its exercises.`

func buildUserMessage(native, target content.Language, level int, exercises []content.GrammarExercise, samples int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learner's language: %s\n", native.Info().Name)
	fmt.Fprintf(&b, "Language being learned: %s\n", target.Info().Name)
	fmt.Fprintf(&b, "Level: %d\n", level)

	if topics := topicsOf(exercises); len(topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(topics, ", "))
	}

	if len(exercises) > 0 {
		b.WriteString("\nExercises in this level:\n")
		for i, ex := range exercises {
			if i == samples {
				break
			}
			fmt.Fprintf(&b, "- (%s) %s\n", ex.Kind, strings.ReplaceAll(ex.Prompt, "\n", " / "))
		}
	}

	fmt.Fprintf(&b, `
Instructions:
1. Write the title, explanation and example labels in %[1]s.
2. Write every example sentence in %[2]s only.
3. Explain only what the exercises above need. Keep it to 2-4 sentences.
4. Do not reveal the answers to the exercises listed.`, native.Info().Name, target.Info().Name)

	return b.String()
}

// topicsOf returns the distinct exercise topics in first-seen order.
func topicsOf(exercises []content.GrammarExercise) []string {
	seen := map[string]bool{}
	var out []string
	for _, ex := range exercises {
		if ex.Topic == "" || seen[ex.Topic] {
			continue
		}
		seen[ex.Topic] = true
		out = append(out, ex.Topic)
	}
	return out
}
