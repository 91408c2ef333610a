package audio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// speakAndWait calls s.Speak and blocks until onComplete fires. It fails
// the test if onComplete runs more than once.
func speakAndWait(t *testing.T, s Speaker, text, lang string) {
	t.Helper()
	var calls atomic.Int32
	done := make(chan struct{})
	s.Speak(text, lang, func() {
		if calls.Add(1) == 1 {
			close(done)
		}
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Speak(%q) never completed", text)
	}
	// Let a stray second callback surface.
	time.Sleep(10 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("onComplete called %d times, want 1", n)
	}
}

type spoken struct {
	text, lang string
}

type recordingSpeaker struct {
	mu    sync.Mutex
	calls []spoken
}

func (r *recordingSpeaker) Speak(text, lang string, onComplete func()) {
	r.mu.Lock()
	r.calls = append(r.calls, spoken{text, lang})
	r.mu.Unlock()
	onComplete()
}

func (r *recordingSpeaker) Calls() []spoken {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]spoken(nil), r.calls...)
}

type fakeSynth struct {
	mu      sync.Mutex
	err     error
	calls   int
	locales []string
}

func (f *fakeSynth) Name() string { return "fake" }

func (f *fakeSynth) Synthesize(_ context.Context, text, locale string) (Clip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.locales = append(f.locales, locale)
	if f.err != nil {
		return Clip{}, f.err
	}
	return Clip{Data: []byte("audio:" + text), Format: "wav"}, nil
}

func (f *fakeSynth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSink struct {
	mu     sync.Mutex
	err    error
	played []Clip
}

func (f *fakeSink) Play(_ context.Context, clip Clip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, clip)
	return nil
}

func (f *fakeSink) Played() []Clip {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Clip(nil), f.played...)
}

var errUnavailable = errors.New("service unavailable")
