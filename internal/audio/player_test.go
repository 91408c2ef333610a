package audio

import (
	"testing"
)

// holdingSpeaker keeps the completion callback until released.
type holdingSpeaker struct {
	calls   int
	pending func()
}

func (h *holdingSpeaker) Speak(_, _ string, onComplete func()) {
	h.calls++
	h.pending = onComplete
}

type panickingSpeaker struct{}

func (panickingSpeaker) Speak(string, string, func()) { panic("boom") }

func TestPlayer_DropsWhileBusy(t *testing.T) {
	inner := &holdingSpeaker{}
	p := NewPlayer(inner)

	first := 0
	p.Speak("elma", "tr", func() { first++ })
	if !p.Busy() {
		t.Fatal("player should be busy while a request plays")
	}

	dropped := 0
	p.Speak("armut", "tr", func() { dropped++ })
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if dropped != 1 {
		t.Errorf("dropped request onComplete = %d, want 1", dropped)
	}

	inner.pending()
	inner.pending()
	if first != 1 {
		t.Errorf("first onComplete = %d, want 1", first)
	}
	if p.Busy() {
		t.Error("player still busy after completion")
	}

	p.Speak("kiraz", "tr", nil)
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 after completion", inner.calls)
	}
}

func TestPlayer_RecoversPanic(t *testing.T) {
	p := NewPlayer(panickingSpeaker{})

	calls := 0
	p.Speak("soleil", "fr", func() { calls++ })

	if calls != 1 {
		t.Errorf("onComplete = %d, want 1", calls)
	}
	if p.Busy() {
		t.Error("player stuck busy after panic")
	}
}

func TestPlayer_EmptyTextCompletes(t *testing.T) {
	inner := &holdingSpeaker{}
	p := NewPlayer(inner)

	calls := 0
	p.Speak("", "en", func() { calls++ })
	if calls != 1 || inner.calls != 0 {
		t.Errorf("onComplete = %d, inner = %d; want 1, 0", calls, inner.calls)
	}
}

func TestPlayer_AsyncSpeaker(t *testing.T) {
	synth := &fakeSynth{}
	sink := &fakeSink{}
	p := NewPlayer(NewRemoteSpeaker(synth, sink, nil))

	speakAndWait(t, p, "hello", "en")
	if p.Busy() {
		t.Error("player busy after async completion")
	}
}

func TestNopSpeaker(t *testing.T) {
	calls := 0
	NopSpeaker{}.Speak("x", "en", func() { calls++ })
	NopSpeaker{}.Speak("x", "en", nil)
	if calls != 1 {
		t.Errorf("onComplete = %d, want 1", calls)
	}
}
