package lesson

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexplanet/internal/briefing"
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/screens/screentest"
	"github.com/abhisek/lexplanet/internal/session"
)

type countingBriefer struct {
	inner *briefing.Service
	calls int
	level int
}

func (c *countingBriefer) Get(ctx context.Context, native, target content.Language, level int) *briefing.Briefing {
	c.calls++
	c.level = level
	return c.inner.Get(ctx, native, target, level)
}

func newLesson(t *testing.T) (*LessonScreen, *session.Engine, *countingBriefer, *screentest.Recorder) {
	t.Helper()
	e, rec := screentest.Speaking(t, session.ModeGrammar)
	if err := e.SelectLevel(1); err != nil {
		t.Fatalf("SelectLevel: %v", err)
	}
	b := &countingBriefer{inner: briefing.NewService(screentest.Catalog(), nil, briefing.DefaultConfig())}
	return New(e, b), e, b, rec
}

// load runs Init and feeds the loaded briefing back into the screen.
func load(t *testing.T, l *LessonScreen) {
	t.Helper()
	batch, ok := l.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init should batch the spinner and the load")
	}
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(loadedMsg); ok {
			l.Update(msg)
		}
	}
}

func TestLoadsBriefing(t *testing.T) {
	l, _, b, _ := newLesson(t)

	if !strings.Contains(l.View(100, 30), "Scanning galaxy") {
		t.Error("expected loading message before the briefing arrives")
	}

	load(t, l)
	if !l.Loaded() {
		t.Fatal("briefing not loaded")
	}
	if b.calls != 1 || b.level != 1 {
		t.Errorf("briefer calls = %d level = %d", b.calls, b.level)
	}

	view := l.View(100, 30)
	for _, want := range []string{"Being something", "Ben öğrenciyim", "Start lesson"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterWaitsForBriefing(t *testing.T) {
	l, e, _, _ := newLesson(t)

	if _, cmd := l.Update(screentest.Key(tea.KeyEnter)); cmd != nil {
		t.Error("enter before load should be ignored")
	}
	if e.Snapshot().Phase != session.PhaseLevelBriefing {
		t.Fatal("engine should still be on the briefing")
	}

	load(t, l)
	_, cmd := l.Update(screentest.Key(tea.KeyEnter))
	if !screentest.IsSync(cmd) {
		t.Fatal("enter should start the lesson")
	}
	if e.Snapshot().Phase != session.PhasePlaying {
		t.Errorf("phase = %s, want playing", e.Snapshot().Phase)
	}
}

func TestBackAbandons(t *testing.T) {
	l, e, _, _ := newLesson(t)

	_, cmd := l.Update(screentest.Key(tea.KeyEscape))
	if !screentest.IsSync(cmd) {
		t.Fatal("esc should sync")
	}
	if e.Snapshot().Phase != session.PhaseMap {
		t.Errorf("phase = %s, want map", e.Snapshot().Phase)
	}
}

func TestSpeakExample(t *testing.T) {
	l, _, _, rec := newLesson(t)
	load(t, l)

	l.Update(screentest.Rune('s'))
	calls := rec.Calls()
	if len(calls) != 1 || calls[0].Text != "Ben öğrenciyim" || calls[0].Lang != "tr" {
		t.Errorf("spoken = %+v", calls)
	}
}
