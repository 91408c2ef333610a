package audio

import (
	"testing"
)

func TestRemoteSpeaker_PlaysSynthesizedClip(t *testing.T) {
	synth := &fakeSynth{}
	sink := &fakeSink{}
	fallback := &recordingSpeaker{}
	r := NewRemoteSpeaker(synth, sink, fallback)

	speakAndWait(t, r, "merhaba", "tr")

	played := sink.Played()
	if len(played) != 1 || string(played[0].Data) != "audio:merhaba" {
		t.Fatalf("played = %v, want one clip for merhaba", played)
	}
	if synth.locales[0] != "tr-TR" {
		t.Errorf("locale = %q, want tr-TR", synth.locales[0])
	}
	if len(fallback.Calls()) != 0 {
		t.Errorf("fallback used on success: %v", fallback.Calls())
	}
}

func TestRemoteSpeaker_CacheAvoidsSecondSynthesis(t *testing.T) {
	synth := &fakeSynth{}
	sink := &fakeSink{}
	r := NewRemoteSpeaker(synth, sink, nil, WithCache(NewCache(t.TempDir())))

	speakAndWait(t, r, "bonjour", "fr")
	speakAndWait(t, r, "bonjour", "fr")
	speakAndWait(t, r, "bonjour", "en")

	if got := synth.Calls(); got != 2 {
		t.Errorf("synth calls = %d, want 2", got)
	}
	if got := len(sink.Played()); got != 3 {
		t.Errorf("played = %d, want 3", got)
	}
}

func TestRemoteSpeaker_FallsBackOnSynthesisError(t *testing.T) {
	synth := &fakeSynth{err: errUnavailable}
	sink := &fakeSink{}
	fallback := &recordingSpeaker{}
	r := NewRemoteSpeaker(synth, sink, fallback)

	speakAndWait(t, r, "kitap", "tr")

	calls := fallback.Calls()
	if len(calls) != 1 || calls[0] != (spoken{"kitap", "tr"}) {
		t.Errorf("fallback calls = %v, want kitap/tr", calls)
	}
	if len(sink.Played()) != 0 {
		t.Error("sink played despite synthesis failure")
	}
}

func TestRemoteSpeaker_FallsBackOnPlaybackError(t *testing.T) {
	synth := &fakeSynth{}
	sink := &fakeSink{err: ErrNoPlayer}
	fallback := &recordingSpeaker{}
	r := NewRemoteSpeaker(synth, sink, fallback)

	speakAndWait(t, r, "book", "en")

	if len(fallback.Calls()) != 1 {
		t.Errorf("fallback calls = %d, want 1", len(fallback.Calls()))
	}
}

func TestRemoteSpeaker_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	synth := &fakeSynth{err: errUnavailable}
	fallback := &recordingSpeaker{}
	r := NewRemoteSpeaker(synth, &fakeSink{}, fallback)

	for i := 0; i < 6; i++ {
		speakAndWait(t, r, "su", "tr")
	}

	if got := synth.Calls(); got != 3 {
		t.Errorf("synth calls = %d, want 3 before the breaker opens", got)
	}
	if got := len(fallback.Calls()); got != 6 {
		t.Errorf("fallback calls = %d, want 6", got)
	}
}
