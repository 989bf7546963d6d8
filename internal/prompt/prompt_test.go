package prompt

import (
	"strings"
	"testing"
)

func confirm(t *testing.T, input string, def bool) bool {
	t.Helper()
	var out strings.Builder
	c := NewStdinConfirmer(strings.NewReader(input), &out)
	got, err := c.Confirm("Update now?", def)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !strings.Contains(out.String(), "Update now?") {
		t.Errorf("question not displayed: %q", out.String())
	}
	return got
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"Y\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", false, false},
		{"\n", true, true},
		{"maybe\n", false, false},
		{"", false, false}, // EOF falls back to default
	}
	for _, tt := range tests {
		if got := confirm(t, tt.input, tt.def); got != tt.want {
			t.Errorf("Confirm(%q, default %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestConfirmSuffixShowsDefault(t *testing.T) {
	var out strings.Builder
	c := NewStdinConfirmer(strings.NewReader("\n"), &out)
	_, _ = c.Confirm("Proceed?", false)
	if !strings.Contains(out.String(), "[y/N]") {
		t.Errorf("default-no suffix missing: %q", out.String())
	}

	out.Reset()
	_, _ = c.Confirm("Proceed?", true)
	if !strings.Contains(out.String(), "[Y/n]") {
		t.Errorf("default-yes suffix missing: %q", out.String())
	}
}
