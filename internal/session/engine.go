package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/store"
)

// Speaker plays text aloud without blocking. onComplete runs exactly
// once, whether playback succeeded or not.
type Speaker interface {
	Speak(text, lang string, onComplete func())
}

// Outcome describes a finalised answer.
type Outcome struct {
	Correct   bool
	Given     string
	Expected  string
	LevelOver bool
	Passed    bool
	Unlocked  bool

	// Ticket must be handed back to Continue to serve the next question.
	Ticket uint64
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithEvents records answers and level attempts to repo.
func WithEvents(repo store.EventRepo) Option {
	return func(e *Engine) { e.events = repo }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine is the level progression state machine. It is driven by one
// caller at a time; it is not safe for concurrent use.
type Engine struct {
	cfg      Config
	content  ContentSource
	progress store.ProgressStore
	events   store.EventRepo
	speaker  Speaker
	rng      *rand.Rand
	log      *slog.Logger

	st State
}

// New creates an engine in PhaseSetup with progress loaded from
// progress. Load failures fall back to score 0 and level 1. progress,
// speaker and rng may be nil.
func New(cfg Config, src ContentSource, progress store.ProgressStore, speaker Speaker, rng *rand.Rand, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:      cfg,
		content:  src,
		progress: progress,
		speaker:  speaker,
		rng:      rng,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.st = State{
		Phase:            PhaseSetup,
		MaxLevel:         cfg.MaxLevel,
		CurrentLevel:     1,
		MaxUnlockedLevel: 1,
	}
	e.rehydrate()
	return e
}

func (e *Engine) rehydrate() {
	if e.progress == nil {
		return
	}
	p, err := e.progress.LoadProgress(context.Background())
	if err != nil {
		e.log.Warn("load progress failed, using defaults", "error", err)
		return
	}
	if p.Score > 0 {
		e.st.Score = p.Score
	}
	if p.MaxUnlockedLevel > 0 {
		e.st.MaxUnlockedLevel = min(p.MaxUnlockedLevel, e.cfg.MaxLevel)
	}
	e.st.CurrentLevel = e.st.MaxUnlockedLevel
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Snapshot returns a copy of the session state safe to keep and render.
func (e *Engine) Snapshot() State { return e.st.clone() }

// Configure sets the language pair and mode and opens the map.
func (e *Engine) Configure(native, target content.Language, mode Mode) error {
	if e.st.Phase != PhaseSetup && e.st.Phase != PhaseMap {
		return fmt.Errorf("configure from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	if !native.Valid() || !target.Valid() {
		return fmt.Errorf("configure %q/%q: unsupported language", native, target)
	}
	if native == target {
		return ErrSameLanguage
	}
	if mode != ModeVocabulary && mode != ModeGrammar {
		return fmt.Errorf("configure: unknown mode %d", mode)
	}

	e.st.Native = native
	e.st.Target = target
	e.st.Mode = mode
	e.st.Phase = PhaseMap
	e.st.Generation++
	e.log.Debug("configured", "native", native, "target", target, "mode", mode)
	return nil
}

// GoToSetup returns from the map to language selection.
func (e *Engine) GoToSetup() error {
	if e.st.Phase != PhaseMap {
		return fmt.Errorf("setup from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	e.st.Phase = PhaseSetup
	e.st.Generation++
	return nil
}

// SelectLevel starts a fresh attempt at level. Vocabulary levels go
// straight to PhasePlaying; grammar levels stop at PhaseLevelBriefing.
// On error the state is unchanged.
func (e *Engine) SelectLevel(level int) error {
	switch e.st.Phase {
	case PhaseMap, PhaseLevelPassed, PhaseLevelFailed:
	default:
		return fmt.Errorf("select level from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	return e.startLevel(level)
}

func (e *Engine) startLevel(level int) error {
	if level < 1 || level > e.st.MaxUnlockedLevel {
		return fmt.Errorf("level %d (unlocked up to %d): %w", level, e.st.MaxUnlockedLevel, ErrLevelLocked)
	}

	pool, err := e.buildLevelPool(level, e.st.Mode, e.st.Target)
	if err != nil {
		return err
	}

	e.st.CurrentLevel = level
	e.st.Pool = pool
	e.st.Cursor = 0
	e.st.CorrectInLevel = 0
	e.st.AnsweredInLevel = 0
	e.clearQuestion()
	e.st.Active = nil
	e.st.AttemptID = uuid.NewString()
	e.st.Generation++

	e.recordLevel(store.LevelStart)
	e.log.Debug("level started", "level", level, "mode", e.st.Mode, "questions", len(pool), "attempt", e.st.AttemptID)

	if e.st.Mode == ModeGrammar {
		e.st.Phase = PhaseLevelBriefing
		return nil
	}
	e.st.Phase = PhasePlaying
	e.advance()
	return nil
}

// StartLesson leaves the briefing and serves the first exercise.
func (e *Engine) StartLesson() error {
	if e.st.Phase != PhaseLevelBriefing {
		return fmt.Errorf("start lesson from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	e.st.Phase = PhasePlaying
	e.advance()
	return nil
}

// advance serves the next pooled question. It returns false when the
// pool is exhausted and leaves the state untouched.
func (e *Engine) advance() bool {
	if e.st.Cursor >= len(e.st.Pool) {
		return false
	}
	q := e.st.Pool[e.st.Cursor]
	e.st.Cursor++
	e.clearQuestion()
	e.st.Active = q
	e.st.Options, e.st.RequiredTokens = e.buildOptions(q)
	e.st.Generation++
	return true
}

func (e *Engine) clearQuestion() {
	e.st.Answer = nil
	e.st.Buffer = nil
	e.st.Options = nil
	e.st.RequiredTokens = 0
}

// Submit offers token as (part of) the answer to the active question.
// It returns nil when the submission is ignored or, for sequenced
// questions, when more tokens are needed.
func (e *Engine) Submit(token string) *Outcome {
	if e.st.Phase != PhasePlaying || e.st.Active == nil || e.st.Answer != nil {
		return nil
	}

	available := 0
	for _, o := range e.st.Options {
		if o == token {
			available++
		}
	}
	if available == 0 {
		return nil
	}

	if !Sequenced(e.st.Active) {
		return e.finalise(token)
	}

	if e.st.UsedCount(token) >= available {
		return nil
	}
	e.st.Buffer = append(e.st.Buffer, token)
	if len(e.st.Buffer) < e.st.RequiredTokens {
		return nil
	}
	return e.finalise(strings.Join(e.st.Buffer, content.AnswerSeparator))
}

// ClearOrderingBuffer discards the partial sequenced answer.
func (e *Engine) ClearOrderingBuffer() {
	if e.st.Phase != PhasePlaying || e.st.Answer != nil {
		return
	}
	e.st.Buffer = nil
}

func (e *Engine) finalise(given string) *Outcome {
	q := e.st.Active
	expected := ExpectedAnswer(q, e.st.Target)
	correct := given == expected

	e.st.Answer = &Answer{Given: given, Expected: expected, Correct: correct}
	e.st.AnsweredInLevel++

	prevScore := e.st.Score
	if correct {
		e.st.CorrectInLevel++
		e.st.Score += e.cfg.PointsPerCorrect
		e.st.Streak++
		e.st.BestStreak = max(e.st.BestStreak, e.st.Streak)
	} else {
		e.st.Streak = 0
		e.st.Score = max(0, e.st.Score-e.cfg.WrongPenalty)
	}

	out := &Outcome{
		Correct:  correct,
		Given:    given,
		Expected: expected,
		Ticket:   e.st.Generation,
	}

	e.recordAnswer(q, given, expected, correct)

	if correct {
		if _, ok := q.(VocabularyQuestion); ok {
			e.Speak(expected, e.st.Target)
		}
	}

	unlocked := false
	if e.st.AnsweredInLevel >= len(e.st.Pool) {
		out.LevelOver = true
		out.Passed = e.passed()
		if out.Passed {
			e.st.Phase = PhaseLevelPassed
			if e.st.CurrentLevel == e.st.MaxUnlockedLevel && e.st.MaxUnlockedLevel < e.cfg.MaxLevel {
				e.st.MaxUnlockedLevel++
				unlocked = true
			}
			e.recordLevel(store.LevelPass)
		} else {
			e.st.Phase = PhaseLevelFailed
			e.recordLevel(store.LevelFail)
		}
		e.log.Debug("level finished", "level", e.st.CurrentLevel, "passed", out.Passed,
			"correct", e.st.CorrectInLevel, "answered", e.st.AnsweredInLevel)
	}
	out.Unlocked = unlocked

	if unlocked || e.st.Score != prevScore {
		e.saveProgress()
	}
	return out
}

// passed applies the threshold with a small tolerance so 8/10 passes at 0.8.
func (e *Engine) passed() bool {
	if e.st.AnsweredInLevel == 0 {
		return false
	}
	return float64(e.st.CorrectInLevel) >= e.cfg.PassThreshold*float64(e.st.AnsweredInLevel)-1e-9
}

// Continue serves the next question after feedback. A ticket from an
// earlier generation is ignored, so a late timer cannot resurrect a
// question after the learner has moved on.
func (e *Engine) Continue(ticket uint64) bool {
	if ticket != e.st.Generation || e.st.Phase != PhasePlaying || e.st.Answer == nil {
		return false
	}
	return e.advance()
}

// RetryLevel starts a new attempt at the current level with a fresh pool.
func (e *Engine) RetryLevel() error {
	if e.st.Phase != PhaseLevelFailed && e.st.Phase != PhaseLevelPassed {
		return fmt.Errorf("retry from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	return e.startLevel(e.st.CurrentLevel)
}

// AdvanceToNextLevel starts the level after a passed one.
func (e *Engine) AdvanceToNextLevel() error {
	if e.st.Phase != PhaseLevelPassed {
		return fmt.Errorf("advance from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	if e.st.CurrentLevel >= e.cfg.MaxLevel {
		return fmt.Errorf("level %d is the last: %w", e.st.CurrentLevel, ErrInvalidTransition)
	}
	return e.startLevel(e.st.CurrentLevel + 1)
}

// ReturnToMap abandons any attempt in progress and shows the map.
// Score and unlocked levels are kept.
func (e *Engine) ReturnToMap() error {
	switch e.st.Phase {
	case PhaseMap:
		return nil
	case PhaseLevelBriefing, PhasePlaying:
		e.recordLevel(store.LevelAbandon)
	case PhaseLevelPassed, PhaseLevelFailed:
	default:
		return fmt.Errorf("map from %s: %w", e.st.Phase, ErrInvalidTransition)
	}

	e.st.Pool = nil
	e.st.Cursor = 0
	e.st.Active = nil
	e.clearQuestion()
	e.st.CorrectInLevel = 0
	e.st.AnsweredInLevel = 0
	e.st.AttemptID = ""
	e.st.Phase = PhaseMap
	e.st.Generation++
	return nil
}

// ResetProgress clears score and unlocked levels, locally and in the
// progress store. It is only accepted outside an attempt.
func (e *Engine) ResetProgress() error {
	if e.st.Phase != PhaseSetup && e.st.Phase != PhaseMap {
		return fmt.Errorf("reset from %s: %w", e.st.Phase, ErrInvalidTransition)
	}
	e.st.Score = 0
	e.st.MaxUnlockedLevel = 1
	e.st.CurrentLevel = 1
	e.st.Streak = 0
	e.st.BestStreak = 0
	e.st.Generation++

	if e.progress == nil {
		return nil
	}
	if err := e.progress.ResetProgress(context.Background()); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// Speak plays text through the speaker. It never blocks and never
// touches grading state.
func (e *Engine) Speak(text string, lang content.Language) {
	if e.speaker == nil || text == "" {
		return
	}
	e.speaker.Speak(text, string(lang), func() {})
}

// SpeakPrompt reads the active question aloud.
func (e *Engine) SpeakPrompt() {
	if e.st.Active == nil {
		return
	}
	text, lang := PromptText(e.st.Active, e.st.Native, e.st.Target)
	e.Speak(text, lang)
}

// SpeakOption reads the i-th presented option in the target language.
func (e *Engine) SpeakOption(i int) {
	if i < 0 || i >= len(e.st.Options) {
		return
	}
	e.Speak(e.st.Options[i], e.st.Target)
}

func (e *Engine) saveProgress() {
	if e.progress == nil {
		return
	}
	p := store.Progress{MaxUnlockedLevel: e.st.MaxUnlockedLevel, Score: e.st.Score}
	if err := e.progress.SaveProgress(context.Background(), p); err != nil {
		e.log.Warn("save progress failed", "error", err)
	}
}

func (e *Engine) recordAnswer(q Question, given, expected string, correct bool) {
	if e.events == nil {
		return
	}
	err := e.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		AttemptID:  e.st.AttemptID,
		Level:      e.st.CurrentLevel,
		Mode:       e.st.Mode.String(),
		Native:     string(e.st.Native),
		Target:     string(e.st.Target),
		QuestionID: q.ID(),
		Given:      given,
		Expected:   expected,
		Correct:    correct,
	})
	if err != nil {
		e.log.Warn("record answer failed", "error", err)
	}
}

func (e *Engine) recordLevel(action string) {
	if e.events == nil {
		return
	}
	err := e.events.AppendLevelEvent(context.Background(), store.LevelEventData{
		AttemptID: e.st.AttemptID,
		Level:     e.st.CurrentLevel,
		Mode:      e.st.Mode.String(),
		Native:    string(e.st.Native),
		Target:    string(e.st.Target),
		Action:    action,
		Answered:  e.st.AnsweredInLevel,
		Correct:   e.st.CorrectInLevel,
		Score:     e.st.Score,
	})
	if err != nil {
		e.log.Warn("record level event failed", "error", err)
	}
}
