package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/handiism/id3-image/internal/batch"
	"github.com/handiism/id3-image/internal/coverart"
	ioutils "github.com/handiism/id3-image/internal/io"
	"github.com/handiism/id3-image/internal/logging"
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Embed runs id3-image-embed.
func Embed(ctx context.Context, args []string, streams Streams) int {
	fs, opts := newFlagSet("id3-image-embed", "<mp3-file>... <image-file|url>", streams.Err)
	fs.IntVar(&opts.MaxSize, "max-size", 0, "Downscale the image to fit this many pixels per side")
	fs.IntVar(&opts.Quality, "quality", 0, "JPEG quality (1-100, default from config)")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return ExitError
	}

	musicFiles := fs.Args()[:fs.NArg()-1]
	imageSource := fs.Arg(fs.NArg() - 1)

	printer := NewPrinter(streams.Out, streams.Err, opts.Verbosity, opts.Quiet)
	svc, runner, ok := setup(opts, streams, printer)
	if !ok {
		return ExitError
	}

	results, _ := runner.Run(ctx, musicFiles, func(ctx context.Context, path string) (string, error) {
		if err := svc.Embed(ctx, path, imageSource); err != nil {
			return "", err
		}
		return fmt.Sprintf("Embedded %s into %s", imageSource, path), nil
	})
	return printer.Results(results)
}

// Extract runs id3-image-extract.
func Extract(ctx context.Context, args []string, streams Streams) int {
	fs, opts := newFlagSet("id3-image-extract", "<mp3-file> [image-file]", streams.Err)
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return ExitError
	}

	musicFile := fs.Arg(0)
	imageFile := fs.Arg(1)
	if imageFile == "" {
		imageFile = ioutils.ReplaceExtension(musicFile, "jpg")
	}

	printer := NewPrinter(streams.Out, streams.Err, opts.Verbosity, opts.Quiet)
	svc, _, ok := setup(opts, streams, printer)
	if !ok {
		return ExitError
	}

	if err := svc.Extract(ctx, musicFile, imageFile); err != nil {
		printer.Error(err)
		return ExitError
	}
	printer.Done(imageFile, fmt.Sprintf("Extracted cover art from %s to %s", musicFile, imageFile))
	return ExitOK
}

// Remove runs id3-image-remove.
func Remove(ctx context.Context, args []string, streams Streams) int {
	fs, opts := newFlagSet("id3-image-remove", "<mp3-file>...", streams.Err)
	fs.BoolVar(&opts.NoConfirm, "no-confirm", false, "Don't ask for confirmation before removing")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return ExitError
	}

	printer := NewPrinter(streams.Out, streams.Err, opts.Verbosity, opts.Quiet)
	svc, runner, ok := setup(opts, streams, printer)
	if !ok {
		return ExitError
	}

	if !opts.Quiet && !opts.NoConfirm && svc.Settings().ConfirmRemove {
		yes, err := Confirm(streams.In, streams.Out, removePrompt)
		if err != nil {
			printer.Error(err)
			return ExitError
		}
		if !yes {
			printer.Info("Exiting without removing images")
			return ExitOK
		}
	}

	results, _ := runner.Run(ctx, fs.Args(), func(ctx context.Context, path string) (string, error) {
		n, err := svc.Remove(ctx, path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %d image(s) from %s", n, path), nil
	})
	return printer.Results(results)
}

// parse parses args. On failure or -h it returns the exit code and false.
func parse(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(expandVerbose(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK, false
		}
		return ExitError, false
	}
	return ExitOK, true
}

func setup(opts *Options, streams Streams, printer *Printer) (*coverart.Service, *batch.Runner, bool) {
	settings, err := loadSettings(opts)
	if err != nil {
		printer.Error(err)
		return nil, nil, false
	}
	logger := logging.New(streams.Err, opts.Verbosity, opts.Quiet)
	svc := coverart.NewService(settings, logger)
	runner := batch.NewRunner(settings.MaxConcurrentFiles, progressLogger(logger))
	return svc, runner, true
}
