package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/id3-image/internal/config"
	"github.com/handiism/id3-image/internal/tui"
	"golang.org/x/term"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (JSON or YAML)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "id3-image-tui needs an interactive terminal; use id3-image-embed, id3-image-extract or id3-image-remove instead")
		os.Exit(1)
	}

	settings, err := config.LoadDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
