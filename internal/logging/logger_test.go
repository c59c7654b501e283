package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      zerolog.Level
	}{
		{0, false, zerolog.WarnLevel},
		{1, false, zerolog.InfoLevel},
		{2, false, zerolog.DebugLevel},
		{5, false, zerolog.DebugLevel},
		{3, true, zerolog.Disabled},
	}

	for _, tt := range tests {
		if got := Level(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("Level(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestNew_Filtering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 0, false)

	log.Info().Msg("hidden")
	log.Warn().Str("file", "song.mp3").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at verbosity 0: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "song.mp3") {
		t.Errorf("warning with field missing from output: %q", out)
	}
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 2, true)

	log.Error().Msg("nothing")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
