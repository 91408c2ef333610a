package outcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexplanet/internal/screens/screentest"
	"github.com/abhisek/lexplanet/internal/session"
)

// finish plays level 1 answering correctly as many times as correct.
func finish(t *testing.T, correct int) *session.Engine {
	t.Helper()
	e := screentest.Playing(t, session.ModeVocabulary)
	for i := 0; i < 3; i++ {
		st := e.Snapshot()
		expected := session.ExpectedAnswer(st.Active, st.Target)
		token := expected
		if i >= correct {
			for _, o := range st.Options {
				if o != expected {
					token = o
					break
				}
			}
		}
		out := e.Submit(token)
		if out == nil {
			t.Fatalf("Submit(%q) ignored", token)
		}
		if !out.LevelOver {
			e.Continue(out.Ticket)
		}
	}
	return e
}

func TestRequired(t *testing.T) {
	tests := []struct {
		threshold float64
		total     int
		want      int
	}{
		{0.8, 10, 8},
		{0.8, 3, 3},
		{0.8, 5, 4},
		{0.5, 3, 2},
		{1, 4, 4},
	}
	for _, tt := range tests {
		if got := required(tt.threshold, tt.total); got != tt.want {
			t.Errorf("required(%v, %d) = %d, want %d", tt.threshold, tt.total, got, tt.want)
		}
	}
}

func TestPassed(t *testing.T) {
	o := New(finish(t, 3))
	if !o.Passed() || o.Phase() != session.PhaseLevelPassed {
		t.Fatal("expected a pass")
	}
	view := o.View(100, 30)
	for _, want := range []string{"Mission successful!", "Next planet", "3/3", "100%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPassedNextPlanet(t *testing.T) {
	e := finish(t, 3)
	o := New(e)

	_, cmd := o.Update(screentest.Key(tea.KeyEnter))
	if !screentest.IsSync(cmd) {
		t.Fatal("next planet should sync")
	}
	if st := e.Snapshot(); st.Phase != session.PhasePlaying || st.CurrentLevel != 2 {
		t.Errorf("engine = %s level %d", st.Phase, st.CurrentLevel)
	}
}

func TestFailed(t *testing.T) {
	e := finish(t, 1)
	o := New(e)
	if o.Passed() {
		t.Fatal("expected a fail")
	}
	view := o.View(100, 30)
	if !strings.Contains(view, "You must get at least 3/3 to advance.") {
		t.Errorf("missing threshold hint:\n%s", view)
	}
	if strings.Contains(view, "Next planet") {
		t.Error("failed attempt should not offer the next planet")
	}

	if _, cmd := o.Update(screentest.Rune('n')); cmd != nil {
		t.Error("n should do nothing after a fail")
	}
	_, cmd := o.Update(screentest.Rune('r'))
	if !screentest.IsSync(cmd) {
		t.Fatal("retry should sync")
	}
	if st := e.Snapshot(); st.Phase != session.PhasePlaying || st.AnsweredInLevel != 0 || st.CurrentLevel != 1 {
		t.Errorf("retry state = %s answered %d level %d", st.Phase, st.AnsweredInLevel, st.CurrentLevel)
	}
}

func TestBackToMap(t *testing.T) {
	e := finish(t, 0)
	o := New(e)

	_, cmd := o.Update(screentest.Key(tea.KeyEscape))
	if !screentest.IsSync(cmd) {
		t.Fatal("esc should sync")
	}
	if st := e.Snapshot(); st.Phase != session.PhaseMap || st.MaxUnlockedLevel != 1 {
		t.Errorf("engine = %s unlocked %d", st.Phase, st.MaxUnlockedLevel)
	}
}

func TestNextPlanetMissingContent(t *testing.T) {
	e := screentest.Configured(t, session.ModeVocabulary)
	// Levels 1 and 2 have words; level 3 has none.
	for level := 1; level <= 2; level++ {
		if err := e.SelectLevel(level); err != nil {
			t.Fatalf("SelectLevel(%d): %v", level, err)
		}
		for i := 0; i < 3; i++ {
			st := e.Snapshot()
			out := e.Submit(session.ExpectedAnswer(st.Active, st.Target))
			if !out.LevelOver {
				e.Continue(out.Ticket)
			}
		}
		if level == 1 {
			if err := e.ReturnToMap(); err != nil {
				t.Fatal(err)
			}
		}
	}

	o := New(e)
	_, cmd := o.Update(screentest.Rune('n'))
	if cmd != nil {
		t.Fatal("advancing into an empty planet should not sync")
	}
	if !strings.Contains(o.View(100, 30), "Planet 3 has no questions yet.") {
		t.Errorf("missing notice:\n%s", o.View(100, 30))
	}
	if e.Snapshot().Phase != session.PhaseLevelPassed {
		t.Error("state should be unchanged")
	}
}
