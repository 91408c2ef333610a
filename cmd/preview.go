package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/lexplanet/internal/briefing"
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/llm"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/store"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one level in plain text (no database)",
	Long: `Show a level's briefing and answer its questions at the prompt.

This is a stateless developer tool: no progress, no events, no speech.
Any level can be previewed, locked or not. Useful for reviewing content
and generated briefings.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("native", "en", "Native language code")
	previewCmd.Flags().String("target", "tr", "Target language code")
	previewCmd.Flags().String("mode", "grammar", "Game mode: vocabulary or grammar")
	previewCmd.Flags().Int("level", 1, "Level to preview")
	previewCmd.Flags().Bool("generate", false, "Ignore bundled briefings and generate one with the LLM")
}

// generatedOnly hides bundled briefings so the service generates one.
type generatedOnly struct {
	*content.Catalog
}

func (generatedOnly) Briefing(content.Language, int) (content.LevelInfo, bool) {
	return content.LevelInfo{}, false
}

// openLevels unlocks every level for previews.
type openLevels struct {
	max int
}

func (o openLevels) LoadProgress(context.Context) (store.Progress, error) {
	return store.Progress{MaxUnlockedLevel: o.max}, nil
}
func (openLevels) SaveProgress(context.Context, store.Progress) error { return nil }
func (openLevels) ResetProgress(context.Context) error                { return nil }

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	nativeVal, _ := cmd.Flags().GetString("native")
	targetVal, _ := cmd.Flags().GetString("target")
	modeVal, _ := cmd.Flags().GetString("mode")
	level, _ := cmd.Flags().GetInt("level")
	generate, _ := cmd.Flags().GetBool("generate")

	native, err := content.ParseLanguage(nativeVal)
	if err != nil {
		return err
	}
	target, err := content.ParseLanguage(targetVal)
	if err != nil {
		return err
	}
	mode, err := session.ParseMode(modeVal)
	if err != nil {
		return err
	}

	catalog, _, err := activeCatalog(cmd)
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.MaxLevel = max(catalog.MaxLevel(), level)
	engine := session.New(cfg, catalog, openLevels{max: cfg.MaxLevel}, nil, nil)
	if err := engine.Configure(native, target, mode); err != nil {
		return err
	}
	if err := engine.SelectLevel(level); err != nil {
		return err
	}

	if mode == session.ModeGrammar {
		var src briefing.Catalog = catalog
		var provider llm.Provider
		if generate {
			src = generatedOnly{catalog}
			appCfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// No event repo: preview requests are not recorded.
			provider, err = llm.NewProviderWithOverrides(ctx, appCfg.LLMProviderConfig(), nil)
			if err != nil {
				return fmt.Errorf("LLM provider: %w", err)
			}
		}
		b := briefing.NewService(src, provider, briefing.DefaultConfig()).Get(ctx, native, target, level)
		printBriefing(out, b)
		if err := engine.StartLesson(); err != nil {
			return err
		}
	}

	return previewLoop(engine, bufio.NewScanner(cmd.InOrStdin()), out)
}

func printBriefing(out io.Writer, b *briefing.Briefing) {
	fmt.Fprintf(out, "── %s (%s) ──\n", b.Title, b.Source)
	fmt.Fprintln(out, b.Explanation)
	for _, ex := range b.Examples {
		fmt.Fprintf(out, "  • %s\n    %s\n", ex.Content, ex.Label)
	}
	fmt.Fprintln(out)
}

// previewLoop asks every question of the attempt. Sequenced answers are
// typed as option numbers separated by spaces.
func previewLoop(engine *session.Engine, scanner *bufio.Scanner, out io.Writer) error {
	for {
		st := engine.Snapshot()
		text, _ := session.PromptText(st.Active, st.Native, st.Target)

		fmt.Fprintf(out, "── Question %d/%d ──\n", st.AnsweredInLevel+1, st.Total())
		fmt.Fprintln(out, text)
		for i, o := range st.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}
		if session.Sequenced(st.Active) {
			fmt.Fprintf(out, "(pick %d, e.g. \"2 1 3\")\n", st.RequiredTokens)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return nil
		}

		outcome, err := submitLine(engine, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%v\n\n", err)
			engine.ClearOrderingBuffer()
			continue
		}

		if outcome.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n",
				strings.ReplaceAll(outcome.Expected, content.AnswerSeparator, " "))
		}
		fmt.Fprintln(out)

		if outcome.LevelOver {
			st := engine.Snapshot()
			verdict := "failed"
			if outcome.Passed {
				verdict = "passed"
			}
			fmt.Fprintf(out, "── Level %s: %d/%d correct ──\n", verdict, st.CorrectInLevel, st.AnsweredInLevel)
			return nil
		}
		engine.Continue(outcome.Ticket)
	}
}

// submitLine feeds the option numbers on line to the engine until the
// answer is final.
func submitLine(engine *session.Engine, line string) (*session.Outcome, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("(no answer)")
	}
	for _, f := range fields {
		st := engine.Snapshot()
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(st.Options) {
			return nil, fmt.Errorf("%q is not an option number", f)
		}
		if out := engine.Submit(st.Options[n-1]); out != nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("incomplete answer, pick %d options", engine.Snapshot().RequiredTokens)
}
