package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExpandVerbose(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"-v"}, []string{"-v"}},
		{[]string{"-vv", "a.mp3"}, []string{"-v", "-v", "a.mp3"}},
		{[]string{"-vvv"}, []string{"-v", "-v", "-v"}},
		{[]string{"-q", "-vv"}, []string{"-q", "-v", "-v"}},
		{[]string{"-verbose"}, []string{"-verbose"}},
		{[]string{"--", "-vv"}, []string{"--", "-vv"}},
		{[]string{"-vx"}, []string{"-vx"}},
	}

	for _, tt := range tests {
		got := expandVerbose(tt.args)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("expandVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestFlagSet_Verbosity(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{nil, 0},
		{[]string{"-v"}, 1},
		{[]string{"-v", "-v"}, 2},
		{[]string{"-vv"}, 2},
		{[]string{"-vvv"}, 3},
		{[]string{"-v", "-verbose"}, 2},
		{[]string{"-v=false"}, 0},
	}

	for _, tt := range tests {
		fs, opts := newFlagSet("test", "", io.Discard)
		if err := fs.Parse(expandVerbose(tt.args)); err != nil {
			t.Fatalf("Parse(%v) error = %v", tt.args, err)
		}
		if opts.Verbosity != tt.want {
			t.Errorf("Parse(%v) verbosity = %d, want %d", tt.args, opts.Verbosity, tt.want)
		}
	}
}

func TestFlagSet_Quiet(t *testing.T) {
	for _, arg := range []string{"-q", "-quiet", "--quiet"} {
		fs, opts := newFlagSet("test", "", io.Discard)
		if err := fs.Parse([]string{arg, "song.mp3"}); err != nil {
			t.Fatalf("Parse(%s) error = %v", arg, err)
		}
		if !opts.Quiet {
			t.Errorf("Parse(%s) did not set quiet", arg)
		}
		if fs.Arg(0) != "song.mp3" {
			t.Errorf("Parse(%s) positional = %q", arg, fs.Arg(0))
		}
	}
}

func TestFlagSet_Usage(t *testing.T) {
	var stderr bytes.Buffer
	fs, _ := newFlagSet("id3-image-test", "<mp3-file>", &stderr)
	fs.Usage()

	if !strings.Contains(stderr.String(), "USAGE: id3-image-test [flags] <mp3-file>") {
		t.Errorf("usage = %q", stderr.String())
	}
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings_FlagOverrides(t *testing.T) {
	opts := &Options{
		ConfigPath: emptyConfig(t),
		MaxSize:    300,
		Quality:    75,
	}

	settings, err := loadSettings(opts)
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if settings.CoverArtMaxSize != 300 {
		t.Errorf("CoverArtMaxSize = %d, want 300", settings.CoverArtMaxSize)
	}
	if settings.JPEGQuality != 75 {
		t.Errorf("JPEGQuality = %d, want 75", settings.JPEGQuality)
	}
}

func TestLoadSettings_InvalidQuality(t *testing.T) {
	opts := &Options{
		ConfigPath: emptyConfig(t),
		Quality:    150,
	}

	if _, err := loadSettings(opts); err == nil {
		t.Error("loadSettings() with quality 150 should fail")
	}
}
