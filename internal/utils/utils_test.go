package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := AskConfirmation(strings.NewReader(tt.input), &out, "Overwrite?", tt.force)
		if got != tt.want {
			t.Errorf("input %q force %v: expected %v, got %v", tt.input, tt.force, tt.want, got)
		}
		if tt.force && out.Len() != 0 {
			t.Error("Expected no prompt when forced")
		}
	}
}

func TestConfirmOverwriteMissingFile(t *testing.T) {
	if !ConfirmOverwrite(filepath.Join(t.TempDir(), "new.txt"), false) {
		t.Error("Expected a missing file to need no confirmation")
	}

	path := filepath.Join(t.TempDir(), "old.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !ConfirmOverwrite(path, true) {
		t.Error("Expected force to confirm")
	}
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	RenderTable(&out, []string{"column", "n"}, [][]string{{"Städte", "12"}, {"id"}})

	want := "┌────────┬────┐\n" +
		"│ column │ n  │\n" +
		"├────────┼────┤\n" +
		"│ Städte │ 12 │\n" +
		"│ id     │    │\n" +
		"└────────┴────┘\n"
	if out.String() != want {
		t.Errorf("Unexpected table:\n%s\nwant:\n%s", out.String(), want)
	}
}
