package audio

import (
	"log/slog"
	"sync/atomic"
)

// Player serialises playback on top of another Speaker. While a request
// is in flight, new requests are dropped rather than queued.
type Player struct {
	speaker Speaker
	busy    atomic.Bool
}

// NewPlayer wraps s with a busy flag.
func NewPlayer(s Speaker) *Player {
	if s == nil {
		s = NopSpeaker{}
	}
	return &Player{speaker: s}
}

// Busy reports whether a request is playing.
func (p *Player) Busy() bool { return p.busy.Load() }

// Speak forwards to the wrapped speaker unless one is already playing.
// The busy flag clears only from the completion callback.
func (p *Player) Speak(text, lang string, onComplete func()) {
	done := once(onComplete)
	if text == "" {
		done()
		return
	}
	if !p.busy.CompareAndSwap(false, true) {
		slog.Debug("speech dropped, player busy", "component", "audio", "lang", lang)
		done()
		return
	}

	finish := once(func() {
		p.busy.Store(false)
		done()
	})
	guard("player", finish, func() {
		p.speaker.Speak(text, lang, finish)
	})
}
