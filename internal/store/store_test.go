package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "lexplanet.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file database above.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"progress", "answer_events", "level_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("LEXPLANET_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("LEXPLANET_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if want := filepath.Join(dir, "lexplanet", "lexplanet.db"); got != want {
			t.Errorf("DefaultDBPath() = %q, want %q", got, want)
		}
	})
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexplanet.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Progress().SaveProgress(ctx, Progress{MaxUnlockedLevel: 4, Score: 70}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	first, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	s.Close()

	// The second migration must find nothing to change.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Progress().LoadProgress(ctx)
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if got.MaxUnlockedLevel != 4 || got.Score != 70 {
		t.Errorf("progress after reopen = %+v", got)
	}
	next, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("Next after reopen: %v", err)
	}
	if next != first+1 {
		t.Errorf("sequence after reopen = %d, want %d", next, first+1)
	}
}

func TestMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)

	for _, index := range []string{"answer_events_attempt_id", "level_events_level", "llm_request_events_purpose", "llm_request_events_timestamp"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"/tmp/a.db", "/tmp/a.db?_pragma=foreign_keys(1)"},
		{"file:x?mode=memory&cache=shared", "file:x?mode=memory&cache=shared&_pragma=foreign_keys(1)"},
		{"a.db?_pragma=foreign_keys(0)", "a.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.dsn); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}
