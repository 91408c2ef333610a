package audio

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// baseWordsPerMinute is the OS speech rate at Rate 1.0.
const baseWordsPerMinute = 175

// LocalSpeaker speaks through the operating system's speech command:
// say on macOS, espeak-ng or espeak elsewhere. When none is installed
// every request completes silently.
type LocalSpeaker struct {
	rate   float64
	voices map[string]string

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)

	detectOnce sync.Once
	command    string

	mu         sync.Mutex
	voiceCache map[string]string
	listing    []sayVoice
	listed     bool
}

// NewLocalSpeaker creates an OS speech speaker. voices maps a locale such
// as "tr-TR" to a voice name and takes precedence over discovery.
func NewLocalSpeaker(rate float64, voices map[string]string) *LocalSpeaker {
	if rate <= 0 {
		rate = 1
	}
	return &LocalSpeaker{
		rate:     rate,
		voices:   voices,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		voiceCache: make(map[string]string),
	}
}

// Available reports whether a speech command is installed.
func (s *LocalSpeaker) Available() bool {
	return s.detect() != ""
}

func (s *LocalSpeaker) detect() string {
	s.detectOnce.Do(func() {
		for _, name := range []string{"say", "espeak-ng", "espeak"} {
			if _, err := s.lookPath(name); err == nil {
				s.command = name
				return
			}
		}
	})
	return s.command
}

// Speak returns immediately and runs the command in the background.
func (s *LocalSpeaker) Speak(text, lang string, onComplete func()) {
	done := once(onComplete)
	go guard("local", done, func() {
		defer done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		name, args := s.commandLine(ctx, text, lang)
		if name == "" {
			return
		}
		if err := s.run(ctx, name, args...); err != nil {
			slog.Debug("local speech failed", "component", "audio", "command", name, "error", err)
		}
	})
}

// commandLine builds the invocation for text, or "" when no command
// is installed.
func (s *LocalSpeaker) commandLine(ctx context.Context, text, lang string) (string, []string) {
	name := s.detect()
	if name == "" {
		return "", nil
	}

	wpm := strconv.Itoa(int(baseWordsPerMinute * s.rate))
	locale := localeOf(lang)

	if name == "say" {
		args := []string{"-r", wpm}
		if v := s.voiceFor(ctx, locale); v != "" {
			args = append(args, "-v", v)
		}
		return name, append(args, "--", text)
	}

	voice := s.voices[locale]
	if voice == "" {
		voice, _, _ = strings.Cut(locale, "-")
	}
	return name, []string{"-s", wpm, "-v", voice, "--", text}
}

// voiceFor resolves and caches the say voice for locale: configured
// voice first, then an exact locale match, then the first voice sharing
// the language.
func (s *LocalSpeaker) voiceFor(ctx context.Context, locale string) string {
	if v := s.voices[locale]; v != "" {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.voiceCache[locale]; ok {
		return v
	}
	if !s.listed {
		s.listed = true
		out, err := s.output(ctx, "say", "-v", "?")
		if err != nil {
			slog.Debug("list voices failed", "component", "audio", "error", err)
		}
		s.listing = parseSayVoices(out)
	}

	v := pickVoice(s.listing, locale)
	s.voiceCache[locale] = v
	return v
}

type sayVoice struct {
	name   string
	locale string
}

// parseSayVoices reads `say -v ?` output, where each line is a voice
// name, its locale such as tr_TR, then "# sample text". Names may
// contain spaces.
func parseSayVoices(out []byte) []sayVoice {
	var voices []sayVoice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		locale := strings.ReplaceAll(fields[len(fields)-1], "_", "-")
		voices = append(voices, sayVoice{
			name:   strings.Join(fields[:len(fields)-1], " "),
			locale: locale,
		})
	}
	return voices
}

func pickVoice(voices []sayVoice, locale string) string {
	for _, v := range voices {
		if strings.EqualFold(v.locale, locale) {
			return v.name
		}
	}
	lang, _, _ := strings.Cut(locale, "-")
	for _, v := range voices {
		if vl, _, _ := strings.Cut(v.locale, "-"); strings.EqualFold(vl, lang) {
			return v.name
		}
	}
	return ""
}
