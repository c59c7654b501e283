package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/id3-image/internal/audio/audiotest"
	"github.com/handiism/id3-image/internal/batch"
	"github.com/handiism/id3-image/internal/config"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// finish runs the pending batch synchronously and feeds the result back.
func finish(t *testing.T, m Model) Model {
	t.Helper()
	if m.state != StateRunning {
		t.Fatalf("state = %d, want StateRunning", m.state)
	}
	return update(t, m, m.execute()())
}

func lastLog(m Model) string {
	if len(m.logs) == 0 {
		return ""
	}
	return m.logs[len(m.logs)-1].Message
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil, []string{"a.mp3", "b.mp3"})

	if m.state != StateInput {
		t.Errorf("state = %d, want StateInput", m.state)
	}
	if m.action != ActionEmbed {
		t.Errorf("action = %s, want Embed", m.action)
	}
	if got := m.audioPaths(); len(got) != 2 || got[0] != "a.mp3" || got[1] != "b.mp3" {
		t.Errorf("audioPaths() = %v", got)
	}
}

func TestAction_Cycle(t *testing.T) {
	m := NewModel(config.DefaultSettings(), nil)
	want := []Action{ActionExtract, ActionRemove, ActionList, ActionEmbed}

	for _, w := range want {
		m = update(t, m, key(tea.KeyCtrlO))
		if m.action != w {
			t.Errorf("action = %s, want %s", m.action, w)
		}
	}
}

func TestAction_String(t *testing.T) {
	if ActionRemove.String() != "Remove" {
		t.Errorf("ActionRemove.String() = %q", ActionRemove.String())
	}
	if Action(9).String() != "Action(9)" {
		t.Errorf("Action(9).String() = %q", Action(9).String())
	}
}

func TestInput_TypingAndFocus(t *testing.T) {
	m := NewModel(config.DefaultSettings(), nil)

	m = update(t, m, runes("song.mp3"))
	m = update(t, m, key(tea.KeyTab))
	m = update(t, m, runes("cover.jpg"))

	if m.audioInput.Value() != "song.mp3" {
		t.Errorf("audio = %q, want song.mp3", m.audioInput.Value())
	}
	if m.imageInput.Value() != "cover.jpg" {
		t.Errorf("image = %q, want cover.jpg", m.imageInput.Value())
	}

	m = update(t, m, key(tea.KeyTab))
	if m.focus != focusAudio {
		t.Errorf("focus = %d, want audio", m.focus)
	}
}

func TestInput_Validation(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		audio   string
		image   string
		wantLog string
	}{
		{"no audio", ActionEmbed, "", "cover.jpg", "enter at least one MP3 file"},
		{"embed without image", ActionEmbed, "song.mp3", "", "enter an image file or URL to embed"},
		{"extract many to one image", ActionExtract, "a.mp3, b.mp3", "out.png", "extract to a named image takes a single MP3 file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(config.DefaultSettings(), nil)
			m.action = tt.action
			m.audioInput.SetValue(tt.audio)
			m.imageInput.SetValue(tt.image)

			m = update(t, m, key(tea.KeyEnter))

			if m.state != StateInput {
				t.Errorf("state = %d, want StateInput", m.state)
			}
			if lastLog(m) != tt.wantLog {
				t.Errorf("log = %q, want %q", lastLog(m), tt.wantLog)
			}
		})
	}
}

func TestRun_Embed(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteMP3(t, dir, "song.mp3")
	cover := audiotest.WriteFile(t, dir, "cover.png", audiotest.PNG(t, 8, 8))

	m := NewModel(config.DefaultSettings(), []string{song})
	m.imageInput.SetValue(cover)

	m = update(t, m, key(tea.KeyEnter))
	if m.totalFiles != 1 {
		t.Errorf("totalFiles = %d, want 1", m.totalFiles)
	}
	m = finish(t, m)

	if m.state != StateComplete {
		t.Fatalf("state = %d, want StateComplete (err %v)", m.state, m.err)
	}
	if len(m.pictures) != 1 || len(m.pictures[0].Pictures) != 1 {
		t.Fatalf("pictures = %+v, want one file with one picture", m.pictures)
	}
	if got := len(audiotest.PictureFrames(t, song)); got != 1 {
		t.Errorf("pictures on disk = %d, want 1", got)
	}
	if !strings.Contains(m.View(), "Cover (front)") {
		t.Error("complete view should list the embedded picture")
	}
}

func TestRun_ExtractDefaultPath(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteTaggedMP3(t, dir, "song.mp3", audiotest.CoverFrame(t))

	m := NewModel(config.DefaultSettings(), []string{song})
	m.action = ActionExtract

	m = finish(t, update(t, m, key(tea.KeyEnter)))

	if m.state != StateComplete {
		t.Fatalf("state = %d, want StateComplete (err %v)", m.state, m.err)
	}
	want := filepath.Join(dir, "song.jpg")
	if m.results[0].Status != "extracted to "+want {
		t.Errorf("status = %q", m.results[0].Status)
	}
}

func TestRun_RemoveConfirm(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteTaggedMP3(t, dir, "song.mp3", audiotest.CoverFrame(t))

	m := NewModel(config.DefaultSettings(), []string{song})
	m.action = ActionRemove

	m = update(t, m, key(tea.KeyEnter))
	if m.state != StateConfirm {
		t.Fatalf("state = %d, want StateConfirm", m.state)
	}
	if !strings.Contains(m.View(), "Are you sure you'd like to clear all embedded images?") {
		t.Error("confirm view should show the prompt")
	}

	// Anything but y cancels.
	m = update(t, m, runes("n"))
	if m.state != StateInput {
		t.Fatalf("state = %d, want StateInput", m.state)
	}
	if lastLog(m) != "Exiting without removing images" {
		t.Errorf("log = %q", lastLog(m))
	}
	if got := len(audiotest.PictureFrames(t, song)); got != 1 {
		t.Fatalf("declined remove changed the file: %d pictures", got)
	}

	m = update(t, m, key(tea.KeyEnter))
	m = update(t, m, runes("y"))
	m = finish(t, m)

	if m.state != StateComplete {
		t.Fatalf("state = %d, want StateComplete (err %v)", m.state, m.err)
	}
	if got := len(audiotest.PictureFrames(t, song)); got != 0 {
		t.Errorf("pictures on disk = %d, want 0", got)
	}
}

func TestRun_RemoveWithoutConfirm(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteTaggedMP3(t, dir, "song.mp3", audiotest.CoverFrame(t))

	settings := config.DefaultSettings()
	settings.ConfirmRemove = false
	m := NewModel(settings, []string{song})
	m.action = ActionRemove

	m = finish(t, update(t, m, key(tea.KeyEnter)))
	if m.state != StateComplete {
		t.Errorf("state = %d, want StateComplete", m.state)
	}
}

func TestRun_ListDoesNotModify(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteTaggedMP3(t, dir, "song.mp3", audiotest.CoverFrame(t), audiotest.CoverFrame(t))

	m := NewModel(config.DefaultSettings(), []string{song})
	m.action = ActionList

	m = finish(t, update(t, m, key(tea.KeyEnter)))
	if m.results[0].Status != "2 picture(s)" {
		t.Errorf("status = %q, want 2 picture(s)", m.results[0].Status)
	}
	if got := len(audiotest.PictureFrames(t, song)); got != 2 {
		t.Errorf("pictures on disk = %d, want 2", got)
	}
}

func TestRun_Failure(t *testing.T) {
	dir := t.TempDir()

	m := NewModel(config.DefaultSettings(), []string{filepath.Join(dir, "missing.mp3")})
	m.action = ActionList

	m = finish(t, update(t, m, key(tea.KeyEnter)))
	if m.state != StateError {
		t.Fatalf("state = %d, want StateError", m.state)
	}
	if m.err == nil || !strings.Contains(m.err.Error(), "Error reading music file") {
		t.Errorf("err = %v", m.err)
	}
	if m.logs[len(m.logs)-1].Level != batch.LevelError {
		t.Errorf("last log level = %d, want error", m.logs[len(m.logs)-1].Level)
	}
}

func TestRun_CancelAndReset(t *testing.T) {
	dir := t.TempDir()
	song := audiotest.WriteTaggedMP3(t, dir, "song.mp3", audiotest.CoverFrame(t))

	m := NewModel(config.DefaultSettings(), []string{song})
	m.action = ActionList
	m = update(t, m, key(tea.KeyEnter))
	pending := m.execute()

	m = update(t, m, key(tea.KeyEsc))
	if m.state != StateError || !errors.Is(m.err, errCancelled) {
		t.Fatalf("state = %d err = %v, want cancelled", m.state, m.err)
	}

	// A late result does not overwrite the cancellation.
	m = update(t, m, pending())
	if !errors.Is(m.err, errCancelled) {
		t.Errorf("err = %v, want cancelled", m.err)
	}

	m = update(t, m, runes("r"))
	if m.state != StateInput {
		t.Fatalf("state = %d, want StateInput", m.state)
	}
	if m.err != nil || len(m.logs) != 0 {
		t.Errorf("reset kept err=%v logs=%v", m.err, m.logs)
	}
	if m.ctx.Err() != nil {
		t.Error("reset should create a fresh context")
	}
	if got := m.audioPaths(); len(got) != 1 {
		t.Errorf("reset should keep the file list, got %v", got)
	}
}

func TestActivity_Write(t *testing.T) {
	a := &activity{}
	n, err := a.Write([]byte("WRN first\n\nWRN second\n"))
	if err != nil || n == 0 {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	events := a.drain()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Message != "WRN first" || events[0].Level != batch.LevelWarning {
		t.Errorf("events[0] = %+v", events[0])
	}
	if len(a.drain()) != 0 {
		t.Error("drain should empty the buffer")
	}
}
