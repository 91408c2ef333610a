package audio

import "context"

// Clip is encoded audio ready for a player command.
type Clip struct {
	Data []byte

	// Format is the file extension, "wav" or "mp3".
	Format string
}

// Synthesizer turns text into audio through a remote service.
type Synthesizer interface {
	// Name identifies the service in logs.
	Name() string

	// Synthesize speaks text in the given BCP-47 locale.
	Synthesize(ctx context.Context, text, locale string) (Clip, error)
}
