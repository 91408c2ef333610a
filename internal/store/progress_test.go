package store

import (
	"context"
	"testing"
)

func TestSQLiteProgress_EmptyLoadsZero(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Progress().LoadProgress(context.Background())
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if got != (Progress{}) {
		t.Errorf("LoadProgress() = %+v, want zero", got)
	}
}

func TestSQLiteProgress_SaveLoadReset(t *testing.T) {
	s := openTestStore(t)
	p := s.Progress()
	ctx := context.Background()

	if err := p.SaveProgress(ctx, Progress{MaxUnlockedLevel: 3, Score: 120}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if err := p.SaveProgress(ctx, Progress{MaxUnlockedLevel: 4, Score: 130}); err != nil {
		t.Fatalf("SaveProgress (update): %v", err)
	}

	got, err := p.LoadProgress(ctx)
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if got.MaxUnlockedLevel != 4 || got.Score != 130 {
		t.Errorf("LoadProgress() = %+v, want {4 130}", got)
	}

	if err := p.ResetProgress(ctx); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	got, err = p.LoadProgress(ctx)
	if err != nil {
		t.Fatalf("LoadProgress after reset: %v", err)
	}
	if got != (Progress{}) {
		t.Errorf("after reset = %+v, want zero", got)
	}
}

func TestOpenProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, url := range []string{"", "sqlite"} {
		ps, closeFn, err := OpenProgress(ctx, url, s)
		if err != nil {
			t.Fatalf("OpenProgress(%q): %v", url, err)
		}
		if _, ok := ps.(*sqliteProgress); !ok {
			t.Errorf("OpenProgress(%q) = %T, want *sqliteProgress", url, ps)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close: %v", err)
		}
	}

	if _, _, err := OpenProgress(ctx, "postgres://localhost/db", s); err == nil {
		t.Error("expected error for unsupported scheme")
	}
	if _, _, err := OpenProgress(ctx, "sqlite", nil); err == nil {
		t.Error("expected error without a store")
	}
}

func TestIsRedisURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"redis://localhost:6379", true},
		{"rediss://cache.example.com:6380/1", true},
		{"sqlite", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRedisURL(tt.url); got != tt.want {
			t.Errorf("IsRedisURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}
