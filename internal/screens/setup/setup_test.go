package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/screens/screentest"
	"github.com/abhisek/lexplanet/internal/session"
)

func press(s *SetupScreen, msgs ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func TestNew_UsesDefaults(t *testing.T) {
	s := New(screentest.Engine(t), content.Turkish, content.French, session.ModeGrammar)

	if s.Native() != content.Turkish || s.Target() != content.French || s.Mode() != session.ModeGrammar {
		t.Errorf("got %s/%s/%s", s.Native(), s.Target(), s.Mode())
	}
	if !strings.Contains(s.View(100, 30), "Ana dilim") {
		t.Error("labels should follow the native language")
	}
}

func TestNew_PrefersConfiguredEngine(t *testing.T) {
	e := screentest.Configured(t, session.ModeVocabulary)
	s := New(e, content.French, content.English, session.ModeGrammar)

	if s.Native() != content.English || s.Target() != content.Turkish || s.Mode() != session.ModeVocabulary {
		t.Errorf("got %s/%s/%s", s.Native(), s.Target(), s.Mode())
	}
}

func TestCycleWraps(t *testing.T) {
	s := New(screentest.Engine(t), content.English, content.French, session.ModeVocabulary)

	press(s, screentest.Key(tea.KeyLeft))
	if s.Native() != content.Turkish {
		t.Errorf("left from first language = %s, want last", s.Native())
	}

	press(s, screentest.Key(tea.KeyDown), screentest.Key(tea.KeyDown), screentest.Key(tea.KeyRight))
	if s.Mode() != session.ModeGrammar {
		t.Errorf("mode = %s, want grammar", s.Mode())
	}
}

func TestStart_Configures(t *testing.T) {
	e := screentest.Engine(t)
	s := New(e, content.English, content.Turkish, session.ModeVocabulary)

	// Enter walks down the rows before starting.
	cmd := press(s,
		screentest.Key(tea.KeyEnter),
		screentest.Key(tea.KeyEnter),
		screentest.Key(tea.KeyEnter),
	)
	if cmd != nil {
		t.Fatal("enter on a selector row should not start")
	}

	cmd = press(s, screentest.Key(tea.KeyEnter))
	if !screentest.IsSync(cmd) {
		t.Fatal("start should request a sync")
	}
	st := e.Snapshot()
	if st.Phase != session.PhaseMap || st.Native != content.English || st.Target != content.Turkish {
		t.Errorf("engine = %s %s/%s", st.Phase, st.Native, st.Target)
	}
}

func TestStart_SameLanguage(t *testing.T) {
	e := screentest.Engine(t)
	s := New(e, content.French, content.French, session.ModeVocabulary)

	s.row = rowStart
	if cmd := press(s, screentest.Key(tea.KeyEnter)); cmd != nil {
		t.Error("same language should not sync")
	}
	if e.Snapshot().Phase != session.PhaseSetup {
		t.Error("engine left setup")
	}
	if !strings.Contains(s.View(100, 30), "deux langues") {
		t.Errorf("missing same-language notice:\n%s", s.View(100, 30))
	}

	press(s, screentest.Key(tea.KeyUp), screentest.Key(tea.KeyUp), screentest.Key(tea.KeyRight))
	if s.notice != "" {
		t.Error("changing a language should clear the notice")
	}
}
