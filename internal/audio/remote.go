package audio

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
)

// RemoteSpeaker synthesizes speech through a remote service and plays it
// with a local sink. Failures, including an open breaker, hand the
// request to the fallback speaker.
type RemoteSpeaker struct {
	synth    Synthesizer
	cache    *Cache
	sink     Sink
	fallback Speaker
	breaker  circuitbreaker.CircuitBreaker[Clip]
	timeout  time.Duration
}

// RemoteOption customises a RemoteSpeaker.
type RemoteOption func(*RemoteSpeaker)

// WithCache stores synthesized clips in c.
func WithCache(c *Cache) RemoteOption {
	return func(r *RemoteSpeaker) { r.cache = c }
}

// WithTimeout bounds synthesis plus playback.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *RemoteSpeaker) { r.timeout = d }
}

// NewRemoteSpeaker wires synth, sink and fallback behind a breaker that
// opens after three consecutive failures and tries again after a minute.
func NewRemoteSpeaker(synth Synthesizer, sink Sink, fallback Speaker, opts ...RemoteOption) *RemoteSpeaker {
	if fallback == nil {
		fallback = NopSpeaker{}
	}
	r := &RemoteSpeaker{
		synth:    synth,
		sink:     sink,
		fallback: fallback,
		timeout:  20 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.breaker = circuitbreaker.New[Clip](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			slog.Warn("speech circuit breaker state change",
				"component", "audio",
				"synthesizer", synth.Name(),
				"from", from.String(),
				"to", to.String())
		},
	})
	return r
}

// Speak returns immediately; synthesis and playback run in the background.
func (r *RemoteSpeaker) Speak(text, lang string, onComplete func()) {
	done := once(onComplete)
	go guard("remote", done, func() {
		r.speak(text, lang, done)
	})
}

func (r *RemoteSpeaker) speak(text, lang string, done func()) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	clip, err := r.clip(ctx, text, lang)
	if err == nil {
		err = r.sink.Play(ctx, clip)
	}
	if err != nil {
		slog.Warn("remote speech failed, using fallback",
			"component", "audio",
			"synthesizer", r.synth.Name(),
			"lang", lang,
			"error", err)
		r.fallback.Speak(text, lang, done)
		return
	}
	done()
}

func (r *RemoteSpeaker) clip(ctx context.Context, text, lang string) (Clip, error) {
	if c, ok := r.cache.Get(text, lang); ok {
		return c, nil
	}

	clip, err := r.breaker.Execute(ctx, func(ctx context.Context) (Clip, error) {
		return r.synth.Synthesize(ctx, text, localeOf(lang))
	})
	if err != nil {
		return Clip{}, err
	}

	if err := r.cache.Put(text, lang, clip); err != nil {
		slog.Debug("audio cache write failed", "component", "audio", "error", err)
	}
	return clip, nil
}
