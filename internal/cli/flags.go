// Package cli holds the command line front ends shared by the id3-image
// binaries: flag parsing, confirmation prompts and result output.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/id3-image/internal/config"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
)

// Options are the flags common to every tool.
type Options struct {
	Verbosity  int
	Quiet      bool
	NoConfirm  bool
	ConfigPath string
	MaxSize    int
	Quality    int
}

// countFlag counts how often a boolean flag was given.
type countFlag struct {
	n *int
}

func (c countFlag) String() string {
	if c.n == nil {
		return "0"
	}
	return strconv.Itoa(*c.n)
}

func (c countFlag) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	if b {
		*c.n++
	}
	return nil
}

func (c countFlag) IsBoolFlag() bool { return true }

// newFlagSet registers the common flags on a new flag set named name.
// usage is the argument synopsis printed after the program name.
func newFlagSet(name, usage string, stderr io.Writer) (*flag.FlagSet, *Options) {
	opts := &Options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	verbose := countFlag{n: &opts.Verbosity}
	fs.Var(verbose, "v", "Verbose mode (-v, -vv, -vvv, etc.)")
	fs.Var(verbose, "verbose", "Same as -v")
	fs.BoolVar(&opts.Quiet, "q", false, "Quiet mode, implies no verbosity, and also no error explanations")
	fs.BoolVar(&opts.Quiet, "quiet", false, "Same as -q")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to config file (JSON or YAML)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "USAGE: %s [flags] %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs, opts
}

// expandVerbose rewrites "-vv" style arguments into repeated "-v" so the
// standard flag package can count them.
func expandVerbose(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) > 2 && arg[0] == '-' && strings.Trim(arg[1:], "v") == "" {
			for range arg[1:] {
				out = append(out, "-v")
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

// loadSettings resolves settings from config files, the environment and
// the image flags, in that order.
func loadSettings(opts *Options) (*config.Settings, error) {
	settings, err := config.LoadDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.MaxSize > 0 {
		settings.CoverArtMaxSize = opts.MaxSize
	}
	if opts.Quality > 0 {
		settings.JPEGQuality = opts.Quality
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
