package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
		{"ok\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.input), &out, removePrompt)
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != removePrompt {
			t.Errorf("prompt = %q, want %q", out.String(), removePrompt)
		}
	}
}

func TestConfirm_ReadsOneLine(t *testing.T) {
	got, err := Confirm(strings.NewReader("n\ny\n"), &bytes.Buffer{}, "? ")
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("Confirm() should only consider the first line")
	}
}
