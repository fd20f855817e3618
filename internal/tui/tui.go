// Package tui provides a Bubble Tea terminal user interface for osu-song-extractor.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/osu-song-extractor/internal/config"
	"github.com/handiism/osu-song-extractor/internal/extract"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6BD6")).
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
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateExtracting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   extract.ProgressLevel
}

// eventLog buffers progress events emitted by the extraction goroutine
// until the render loop drains them on its next tick.
type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *eventLog) append(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *eventLog) drain() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.entries
	l.entries = nil
	return drained
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state       State
	songsInput  textinput.Model
	outputInput textinput.Model
	focusOutput bool
	spinner     spinner.Model
	progress    progress.Model
	settings    *config.Settings
	logs        []LogEntry
	events      *eventLog
	err         error

	// Extraction context
	ctx    context.Context
	cancel context.CancelFunc

	extractor *extract.Extractor

	// Extraction progress
	totalUnits     int32
	scannedUnits   int32
	extractedSongs int32

	// Options
	artistFirst bool
	playlist    bool
	verbose     bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	settings := config.DefaultSettings()

	songs := textinput.New()
	songs.Placeholder = settings.SongsPath
	songs.SetValue(settings.SongsPath)
	songs.Focus()
	songs.CharLimit = 500
	songs.Width = 60

	output := textinput.New()
	output.Placeholder = settings.OutputPath
	output.SetValue(settings.OutputPath)
	output.CharLimit = 500
	output.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6BD6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		songsInput:  songs,
		outputInput: output,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logs:        make([]LogEntry, 0),
		events:      &eventLog{},
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ExtractDoneMsg is sent when the extraction run finishes.
	ExtractDoneMsg struct {
		Count int
		Err   error
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
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateExtracting {
				m.cancel()
			}

		case "tab":
			if m.state == StateInput {
				m.focusOutput = !m.focusOutput
				if m.focusOutput {
					m.songsInput.Blur()
					m.outputInput.Focus()
				} else {
					m.outputInput.Blur()
					m.songsInput.Focus()
				}
				return m, nil
			}

		case "enter":
			if m.state == StateInput && m.songsInput.Value() != "" {
				m.state = StateExtracting
				return m, tea.Batch(m.startExtraction(), m.tickProgress(), m.spinner.Tick)
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.artistFirst = !m.artistFirst
				return m, nil
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.extractor = nil
				m.totalUnits = 0
				m.scannedUnits = 0
				m.extractedSongs = 0
				m.events = &eventLog{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.focusOutput = false
				m.outputInput.Blur()
				m.songsInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ExtractDoneMsg:
		m.drainEvents()
		m.extractedSongs = int32(msg.Count)
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.extractor != nil && m.state == StateExtracting {
			m.drainEvents()
			scanned, extracted := m.extractor.GetProgress()
			m.scannedUnits = scanned
			m.extractedSongs = extracted

			var percent float64
			if m.totalUnits > 0 {
				percent = float64(scanned) / float64(m.totalUnits)
				if percent > 1 {
					percent = 1
				}
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text inputs
	if m.state == StateInput {
		var cmd tea.Cmd
		if m.focusOutput {
			m.outputInput, cmd = m.outputInput.Update(msg)
		} else {
			m.songsInput, cmd = m.songsInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// drainEvents moves buffered extraction events into the visible log.
func (m *Model) drainEvents() {
	for _, entry := range m.events.drain() {
		if entry.Level == extract.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, entry)
	}
	// Keep only the last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
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
	b.WriteString(titleStyle.Render("🎵 osu! Song Extractor"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Extract songs from osu! beatmaps"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateExtracting:
		b.WriteString(m.viewExtracting())
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

	b.WriteString(subtitleStyle.Render("Songs folder:"))
	b.WriteString("\n")
	b.WriteString(m.songsInput.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Output folder:"))
	b.WriteString("\n")
	b.WriteString(m.outputInput.View())
	b.WriteString("\n\n")

	orderingCheck := "[ ]"
	if m.artistFirst {
		orderingCheck = "[×]"
	}
	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Artist - Title ordering (ctrl+o)\n", orderingCheck))
	b.WriteString(fmt.Sprintf("  %s Create playlist (ctrl+p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+v)\n", verboseCheck))

	return b.String()
}

func (m Model) viewExtracting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Extracting songs..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.View())
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Beatmaps: %d/%d | Extracted: %d",
		m.scannedUnits,
		m.totalUnits,
		m.extractedSongs,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Extraction Complete!\n\n"+
			"Beatmaps scanned: %d\n"+
			"Songs extracted: %d",
		m.scannedUnits,
		m.extractedSongs,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case extract.LevelError:
			style = errorStyle
			prefix = "✗"
		case extract.LevelWarning:
			style = warningStyle
			prefix = "!"
		case extract.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case extract.LevelInfo:
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
		return "enter: start • tab: switch field • ctrl+o: ordering • ctrl+p: playlist • ctrl+v: verbose • esc: quit"
	case StateExtracting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// startExtraction builds the extractor and runs it in the background.
func (m *Model) startExtraction() tea.Cmd {
	settings := m.settings
	settings.SongsPath = m.songsInput.Value()
	settings.OutputPath = m.outputInput.Value()
	if m.artistFirst {
		settings.NameFormat = "{artist} - {title}.mp3"
	}
	settings.CreatePlaylist = m.playlist

	// Approximate total for the progress bar: immediate children of the
	// Songs folder. Pack entries push scanned past this, so the bar
	// clamps at 100%.
	if children, err := os.ReadDir(settings.SongsPath); err == nil {
		m.totalUnits = int32(len(children))
	}

	events := m.events
	extractor := extract.NewExtractor(settings, func(event extract.ProgressEvent) {
		events.append(LogEntry{Message: event.Message, Level: event.Level})
	})
	m.extractor = extractor

	ctx := m.ctx
	return func() tea.Msg {
		count, err := extractor.Run(ctx)
		return ExtractDoneMsg{Count: count, Err: err}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
