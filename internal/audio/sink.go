package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Sink plays a clip to completion.
type Sink interface {
	Play(ctx context.Context, clip Clip) error
}

// ErrNoPlayer is returned when no audio player command is installed.
var ErrNoPlayer = errors.New("no audio player found")

// playerCommand describes an external player and the formats it plays.
type playerCommand struct {
	name    string
	args    []string
	formats []string
}

var knownPlayers = []playerCommand{
	{name: "afplay", formats: []string{"wav", "mp3"}},
	{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}, formats: []string{"wav", "mp3"}},
	{name: "mpg123", args: []string{"-q"}, formats: []string{"mp3"}},
	{name: "paplay", formats: []string{"wav"}},
	{name: "aplay", args: []string{"-q"}, formats: []string{"wav"}},
}

func (p playerCommand) plays(format string) bool {
	for _, f := range p.formats {
		if f == format {
			return true
		}
	}
	return false
}

// CommandSink plays clips by writing them to a temp file and running an
// installed player.
type CommandSink struct {
	// Override, when set, is used for every format. It may carry
	// arguments, e.g. "mpv --really-quiet".
	Override string

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewCommandSink returns a sink that searches PATH for a player.
func NewCommandSink(override string) *CommandSink {
	return &CommandSink{
		Override: override,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// command picks the player for format.
func (s *CommandSink) command(format string) (string, []string, error) {
	if fields := strings.Fields(s.Override); len(fields) > 0 {
		return fields[0], fields[1:], nil
	}
	for _, p := range knownPlayers {
		if !p.plays(format) {
			continue
		}
		if _, err := s.lookPath(p.name); err == nil {
			return p.name, p.args, nil
		}
	}
	return "", nil, fmt.Errorf("%w for %s", ErrNoPlayer, format)
}

func (s *CommandSink) Play(ctx context.Context, clip Clip) error {
	name, args, err := s.command(clip.Format)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "lexplanet-*."+clip.Format)
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(clip.Data); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	if err := s.run(ctx, name, append(args, f.Name())...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}
