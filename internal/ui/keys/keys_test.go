package keys

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

func TestOptionIndex(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1", 0, true},
		{"3", 2, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := OptionIndex(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("OptionIndex(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBindingsMatchKeyPresses(t *testing.T) {
	tests := []struct {
		msg     tea.KeyPressMsg
		binding key.Binding
	}{
		{tea.KeyPressMsg{Code: tea.KeyEnter}, Select},
		{tea.KeyPressMsg{Code: tea.KeyEscape}, Back},
		{tea.KeyPressMsg{Code: tea.KeyBackspace}, Clear},
		{tea.KeyPressMsg{Code: tea.KeyUp}, Up},
		{tea.KeyPressMsg{Code: 'j', Text: "j"}, Down},
		{tea.KeyPressMsg{Code: 's', Text: "s"}, Speak},
	}
	for _, tt := range tests {
		if !key.Matches(tt.msg, tt.binding) {
			t.Errorf("%q does not match %v", tt.msg.String(), tt.binding.Keys())
		}
	}
}

func TestHint(t *testing.T) {
	h := Hint(Select, "")
	if h.Key != "Enter" || h.Description != "select" {
		t.Errorf("Hint = %+v", h)
	}
	if got := Hint(Select, "Start").Description; got != "Start" {
		t.Errorf("override = %q, want Start", got)
	}
}
