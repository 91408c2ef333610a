package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/i18n"
	"github.com/abhisek/lexplanet/internal/llm"
)

// Service resolves level briefings. Briefings bundled with the content
// pack win; levels without one are generated once per language pair
// with the LLM provider and cached for the process lifetime.
type Service struct {
	catalog  Catalog
	provider llm.Provider
	cfg      Config
	log      *slog.Logger

	mu    sync.Mutex
	cache map[key]*Briefing
}

// NewService creates a briefing service. provider may be nil, in which
// case levels without a bundled briefing get a fallback built from the
// exercise topics.
func NewService(catalog Catalog, provider llm.Provider, cfg Config) *Service {
	return &Service{
		catalog:  catalog,
		provider: provider,
		cfg:      cfg,
		log:      slog.Default().With("component", "briefing"),
		cache:    make(map[key]*Briefing),
	}
}

// Has reports whether a briefing is available without generation.
func (s *Service) Has(native, target content.Language, level int) bool {
	if _, ok := s.catalog.Briefing(target, level); ok {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[key{native, target, level}]
	return ok
}

// Get returns the briefing for level in target, localised to native.
// It never returns nil: generation failures are logged and answered
// with the fallback briefing, which is not cached so a later call can
// retry.
func (s *Service) Get(ctx context.Context, native, target content.Language, level int) *Briefing {
	if info, ok := s.catalog.Briefing(target, level); ok {
		return fromLevelInfo(info, native, target, level)
	}

	k := key{native, target, level}
	s.mu.Lock()
	cached, ok := s.cache[k]
	s.mu.Unlock()
	if ok {
		return cached
	}

	exercises := s.catalog.GrammarByLevelAndLanguage(level, target)
	if s.provider == nil || len(exercises) == 0 {
		return s.fallback(native, target, level, exercises)
	}

	b, err := s.generate(ctx, native, target, level, exercises)
	if err != nil {
		s.log.Warn("briefing generation failed", "target", target, "level", level, "error", err)
		return s.fallback(native, target, level, exercises)
	}

	s.mu.Lock()
	s.cache[k] = b
	s.mu.Unlock()
	return b
}

type briefingOutput struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Examples    []struct {
		Label   string `json:"label"`
		Content string `json:"content"`
	} `json:"examples"`
}

func (s *Service) generate(ctx context.Context, native, target content.Language, level int, exercises []content.GrammarExercise) (*Briefing, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeBriefing)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(native, target, level, exercises, s.cfg.SampleExercises)},
		},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("briefing generation: %w", err)
	}

	var out briefingOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse briefing response: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" || strings.TrimSpace(out.Explanation) == "" {
		return nil, fmt.Errorf("briefing response is missing a title or explanation")
	}

	b := &Briefing{
		Level:       level,
		Target:      target,
		Native:      native,
		Title:       strings.TrimSpace(out.Title),
		Explanation: strings.TrimSpace(out.Explanation),
		Source:      SourceGenerated,
	}
	for _, ex := range out.Examples {
		if ex.Content == "" {
			continue
		}
		b.Examples = append(b.Examples, Example{Label: ex.Label, Content: ex.Content})
	}
	return b, nil
}

func (s *Service) fallback(native, target content.Language, level int, exercises []content.GrammarExercise) *Briefing {
	b := &Briefing{
		Level:       level,
		Target:      target,
		Native:      native,
		Title:       i18n.Tf(native, i18n.KeyBriefingFallbackTitle, level),
		Explanation: i18n.T(native, i18n.KeyBriefingFallbackBody),
		Source:      SourceFallback,
	}
	if topics := topicsOf(exercises); len(topics) > 0 {
		b.Explanation += "\n\n" + i18n.Tf(native, i18n.KeyBriefingTopics, strings.Join(topics, ", "))
	}
	return b
}
