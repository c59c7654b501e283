package tui

import (
	"strings"
	"sync"

	"github.com/handiism/id3-image/internal/batch"
)

// activity collects progress events from worker goroutines until the UI
// drains them on the next tick. It also serves as the log writer, so
// warnings such as partial tag recovery show up in the log view.
type activity struct {
	mu     sync.Mutex
	events []batch.ProgressEvent
}

func (a *activity) add(event batch.ProgressEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *activity) drain() []batch.ProgressEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	events := a.events
	a.events = nil
	return events
}

// Write implements io.Writer for a line based log writer.
func (a *activity) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			a.add(batch.ProgressEvent{Message: line, Level: batch.LevelWarning})
		}
	}
	return len(p), nil
}
