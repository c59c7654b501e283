package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/id3-image/internal/cli"
)

func main() {
	// Handle interrupts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Embed(ctx, os.Args[1:], cli.StdStreams())
	cancel()
	os.Exit(code)
}
