// Package tui provides a Bubble Tea terminal user interface for id3-image.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/id3-image/internal/batch"
	"github.com/handiism/id3-image/internal/config"
	"github.com/handiism/id3-image/internal/coverart"
	ioutils "github.com/handiism/id3-image/internal/io"
	"github.com/handiism/id3-image/internal/model"
	"github.com/rs/zerolog"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	pictureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateConfirm
	StateRunning
	StateComplete
	StateError
)

// Action is the operation applied to the selected files.
type Action int

const (
	ActionEmbed Action = iota
	ActionExtract
	ActionRemove
	ActionList
)

var actionNames = [...]string{"Embed", "Extract", "Remove", "List"}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// next cycles through the actions.
func (a Action) next() Action {
	return (a + 1) % Action(len(actionNames))
}

// needsImage reports whether the image field is required.
func (a Action) needsImage() bool {
	return a == ActionEmbed
}

const (
	focusAudio = iota
	focusImage
)

const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// FilePictures lists the pictures found in one file after a run.
type FilePictures struct {
	Path     string
	Pictures []model.Picture
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state      State
	action     Action
	focus      int
	audioInput textinput.Model
	imageInput textinput.Model
	spinner    spinner.Model
	progress   progress.Model
	settings   *config.Settings
	logs       []LogEntry
	results    []batch.Result
	pictures   []FilePictures
	err        error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	service  *coverart.Service
	runner   *batch.Runner
	activity *activity

	// Run progress
	doneFiles  int32
	totalFiles int32

	width  int
	height int
}

// NewModel creates a new TUI model. audioPaths pre-fill the audio field.
func NewModel(settings *config.Settings, audioPaths []string) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	audio := textinput.New()
	audio.Placeholder = "song.mp3, other.mp3"
	audio.Focus()
	audio.CharLimit = 2000
	audio.Width = 60
	audio.SetValue(strings.Join(audioPaths, ", "))

	img := textinput.New()
	img.Placeholder = "cover.jpg or https://..."
	img.CharLimit = 500
	img.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	act := &activity{}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:          act,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:      StateInput,
		audioInput: audio,
		imageInput: img,
		spinner:    sp,
		progress:   prog,
		settings:   settings,
		logs:       make([]LogEntry, 0),
		ctx:        ctx,
		cancel:     cancel,
		service:    coverart.NewService(settings, logger),
		runner:     batch.NewRunner(settings.MaxConcurrentFiles, act.add),
		activity:   act,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// RunDoneMsg is sent when the batch finishes.
	RunDoneMsg struct {
		Results  []batch.Result
		Pictures []FilePictures
		Err      error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateConfirm:
			return m.updateConfirm(msg)
		case StateInput:
			if next, cmd, handled := m.updateInputKeys(msg); handled {
				return next, cmd
			}
		default:
			switch msg.String() {
			case "ctrl+c":
				m.cancel()
				return m, tea.Quit

			case "esc":
				if m.state == StateRunning {
					m.cancel()
					m.state = StateError
					m.err = errCancelled
				}

			case "q":
				if m.state == StateComplete || m.state == StateError {
					return m, tea.Quit
				}

			case "r":
				if m.state == StateComplete || m.state == StateError {
					m = m.reset()
					return m, textinput.Blink
				}
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		if m.state != StateRunning {
			break
		}
		m = m.collect()
		var percent float64
		if m.totalFiles > 0 {
			percent = float64(m.doneFiles) / float64(m.totalFiles)
		}
		cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())

	case RunDoneMsg:
		// A run cancelled with esc has already moved on.
		if m.state != StateRunning {
			break
		}
		m = m.collect()
		m.results = msg.Results
		m.pictures = msg.Pictures
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update the focused text input
	if m.state == StateInput {
		var cmd tea.Cmd
		if m.focus == focusAudio {
			m.audioInput, cmd = m.audioInput.Update(msg)
		} else {
			m.imageInput, cmd = m.imageInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateInputKeys handles keys that control the input form. Other keys go
// to the focused text input.
func (m Model) updateInputKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancel()
		return m, tea.Quit, true

	case "tab", "shift+tab":
		m = m.toggleFocus()
		return m, textinput.Blink, true

	case "ctrl+o":
		m.action = m.action.next()
		return m, nil, true

	case "enter":
		if err := m.validate(); err != nil {
			m = m.log(err.Error(), batch.LevelError)
			return m, nil, true
		}
		if m.action == ActionRemove && m.settings.ConfirmRemove {
			m.state = StateConfirm
			return m, nil, true
		}
		next, cmd := m.start()
		return next, cmd, true
	}
	return m, nil, false
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "y", "Y":
		return m.start()
	}
	m.state = StateInput
	m = m.log("Exiting without removing images", batch.LevelInfo)
	return m, textinput.Blink
}

func (m Model) toggleFocus() Model {
	if m.focus == focusAudio {
		m.focus = focusImage
		m.audioInput.Blur()
		m.imageInput.Focus()
	} else {
		m.focus = focusAudio
		m.imageInput.Blur()
		m.audioInput.Focus()
	}
	return m
}

// validate checks the form before a run.
func (m Model) validate() error {
	paths := m.audioPaths()
	if len(paths) == 0 {
		return errors.New("enter at least one MP3 file")
	}
	image := strings.TrimSpace(m.imageInput.Value())
	if m.action.needsImage() && image == "" {
		return errors.New("enter an image file or URL to embed")
	}
	if m.action == ActionExtract && image != "" && len(paths) > 1 {
		return errors.New("extract to a named image takes a single MP3 file")
	}
	return nil
}

// audioPaths splits the audio field on commas and newlines.
func (m Model) audioPaths() []string {
	fields := strings.FieldsFunc(m.audioInput.Value(), func(r rune) bool {
		return r == ',' || r == '\n'
	})
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			paths = append(paths, f)
		}
	}
	return paths
}

func (m Model) start() (Model, tea.Cmd) {
	m.state = StateRunning
	m.logs = nil
	m.results = nil
	m.pictures = nil
	m.err = nil
	m.doneFiles = 0
	m.totalFiles = int32(len(batch.Dedupe(m.audioPaths())))
	return m, tea.Batch(m.execute(), m.spinner.Tick, m.tickProgress())
}

// execute runs the selected action over every audio file in the background.
func (m Model) execute() tea.Cmd {
	ctx := m.ctx
	svc := m.service
	runner := m.runner
	paths := m.audioPaths()
	op := m.operation(svc, strings.TrimSpace(m.imageInput.Value()))

	return func() tea.Msg {
		results, err := runner.Run(ctx, paths, op)

		var pictures []FilePictures
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			pics, perr := svc.Pictures(res.Path)
			if perr != nil {
				continue
			}
			pictures = append(pictures, FilePictures{Path: res.Path, Pictures: pics})
		}
		return RunDoneMsg{Results: results, Pictures: pictures, Err: err}
	}
}

func (m Model) operation(svc *coverart.Service, image string) batch.Operation {
	switch m.action {
	case ActionEmbed:
		return func(ctx context.Context, path string) (string, error) {
			if err := svc.Embed(ctx, path, image); err != nil {
				return "", err
			}
			return "embedded " + filepath.Base(image), nil
		}
	case ActionExtract:
		return func(ctx context.Context, path string) (string, error) {
			out := image
			if out == "" {
				out = ioutils.ReplaceExtension(path, "jpg")
			}
			if err := svc.Extract(ctx, path, out); err != nil {
				return "", err
			}
			return "extracted to " + out, nil
		}
	case ActionRemove:
		return func(ctx context.Context, path string) (string, error) {
			n, err := svc.Remove(ctx, path)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("removed %d image(s)", n), nil
		}
	default:
		return func(ctx context.Context, path string) (string, error) {
			pics, err := svc.Pictures(path)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d picture(s)", len(pics)), nil
		}
	}
}

// collect moves pending progress events into the log view.
func (m Model) collect() Model {
	for _, event := range m.activity.drain() {
		if event.Level == batch.LevelVerbose {
			continue
		}
		m = m.log(event.Message, event.Level)
	}
	m.doneFiles, m.totalFiles = m.runner.GetProgress()
	return m
}

func (m Model) log(message string, level batch.ProgressLevel) Model {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	// Keep only the most recent entries
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return m
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.results = nil
	m.pictures = nil
	m.err = nil
	m.doneFiles = 0
	m.totalFiles = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.focus = focusImage
	return m.toggleFocus()
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ id3-image"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Embed, extract and remove MP3 cover art"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateConfirm:
		b.WriteString(m.viewConfirm())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Action: "))
	for i, name := range actionNames {
		if Action(i) == m.action {
			b.WriteString(successStyle.Render("[" + name + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + name + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("MP3 file(s):"))
	b.WriteString("\n")
	b.WriteString(m.audioInput.View())
	b.WriteString("\n\n")

	label := "Image file or URL:"
	switch m.action {
	case ActionExtract:
		label = "Output image (blank: next to the MP3 as .jpg):"
	case ActionRemove, ActionList:
		label = "Image (unused):"
	}
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(m.imageInput.View())
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("JPEG quality: %d | Max size: %s | ID3v2.%d",
		m.settings.JPEGQuality, maxSizeLabel(m.settings.CoverArtMaxSize), m.settings.ID3Version)))
	b.WriteString("\n")

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func maxSizeLabel(size int) string {
	if size <= 0 {
		return "original"
	}
	return fmt.Sprintf("%dpx", size)
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("Are you sure you'd like to clear all embedded images? [y/N]"))
	b.WriteString("\n\n")
	for _, path := range m.audioPaths() {
		b.WriteString(infoStyle.Render("  " + path))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(m.action.String() + "..."))
	b.WriteString("\n\n")

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.doneFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.doneFiles, m.totalFiles)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf("✨ %s complete!\n\nFiles: %d", m.action, len(m.results)))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderPictures())
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderPictures())
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderPictures() string {
	var b strings.Builder

	for _, fp := range m.pictures {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s: %d picture(s)", filepath.Base(fp.Path), len(fp.Pictures))))
		b.WriteString("\n")
		for i, pic := range fp.Pictures {
			b.WriteString(pictureStyle.Render(fmt.Sprintf("  %d. %s", i+1, pic)))
			b.WriteString("\n")
		}
	}
	if len(m.pictures) > 0 {
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: run • tab: switch field • ctrl+o: change action • esc: quit"
	case StateConfirm:
		return "y: remove images • any other key: cancel"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: start over • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings, audioPaths []string) error {
	p := tea.NewProgram(NewModel(settings, audioPaths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
