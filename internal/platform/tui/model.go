package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fallscene/internal/config"
	"github.com/vovakirdan/fallscene/internal/core"
	"github.com/vovakirdan/fallscene/internal/scene"
)

// chromeRows is the number of rows reserved below the frame for status and help.
const chromeRows = 2

// PreviewOptions configures a preview session.
type PreviewOptions struct {
	// Name labels snapshots and the status line (usually the composition ID).
	Name string

	// SnapshotDir is where ctrl+s writes plain-text frames. Empty disables snapshots.
	SnapshotDir string

	// ItemAspect is the width/height ratio items are drawn with. Zero means square.
	ItemAspect float64

	// Logger receives snapshot and resize events. Nil discards them.
	Logger *log.Logger
}

// Model is the Bubble Tea model for previewing a scene in the terminal.
type Model struct {
	sim       *scene.Simulator
	opts      PreviewOptions
	projector *Projector
	keys      PreviewKeyMap
	help      help.Model
	frame     int
	paused    bool
	width     int
	height    int
	status    string
	quitting  bool
}

// NewModel creates a preview model for sim sized to a width x height terminal.
func NewModel(sim *scene.Simulator, width, height int, opts PreviewOptions) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := Model{
		sim:  sim,
		opts: opts,
		keys: DefaultPreviewKeyMap(),
		help: help.New(),
	}
	m.resize(width, height)
	return m
}

// Init starts the playback loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.sim.Video().FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionTogglePause:
		m.paused = !m.paused
	case core.ActionRestart:
		m.frame = 0
	case core.ActionSnapshot:
		m.status = m.saveSnapshot()
	case core.ActionStepForward, core.ActionStepBack:
		// Stepping implies inspecting a single frame
		m.paused = true
		m.seek(action.FrameDelta(m.sim.Video().FPS))
	case core.ActionSeekForward, core.ActionSeekBack:
		m.seek(action.FrameDelta(m.sim.Video().FPS))
	}

	return m, nil
}

// handleTick advances the playhead, looping at the end of the timeline.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.seek(1)
	}
	return m, tickCmd(m.sim.Video().FPS)
}

// seek moves the playhead by delta frames, wrapping around the timeline.
func (m *Model) seek(delta int) {
	n := m.frameCount()
	m.frame = ((m.frame+delta)%n + n) % n
}

func (m Model) frameCount() int {
	return max(m.sim.Video().DurationInFrames, 1)
}

// resize fits the projected frame into the terminal below-chrome area.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	cols, rows := FitCells(m.sim.Video().Aspect(), width, height-chromeRows)
	m.projector = NewProjector(m.sim.Geometry(), cols, rows, nil)
	m.projector.SetItemAspect(m.opts.ItemAspect)
	m.opts.Logger.Debug("preview resized", "cols", cols, "rows", rows)
}

// Frame returns the current playhead position.
func (m Model) Frame() int {
	return m.frame
}

// Paused reports whether playback is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Screen projects the current frame.
func (m Model) Screen() *core.Screen {
	return m.projector.Project(m.sim.Frame(m.frame))
}

// saveSnapshot writes the current frame as plain text and returns a status message.
func (m Model) saveSnapshot() string {
	if m.opts.SnapshotDir == "" {
		return "snapshots disabled"
	}
	if err := os.MkdirAll(m.opts.SnapshotDir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create snapshot directory", "error", err)
		return "snapshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	name := m.opts.Name
	if name == "" {
		name = "scene"
	}
	filename := fmt.Sprintf("%s_f%04d_%s.txt", name, m.frame, timestamp)
	path := filepath.Join(m.opts.SnapshotDir, filename)

	if err := os.WriteFile(path, []byte(m.Screen().String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot write snapshot", "path", path, "error", err)
		return "snapshot failed"
	}
	m.opts.Logger.Info("snapshot saved", "path", path)
	return "saved " + filename
}

// statusLine describes the playhead.
func (m Model) statusLine() string {
	state := "playing"
	if m.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" %s  frame %d/%d  %d items  seed %d  %s",
		m.opts.Name, m.frame, m.frameCount(), len(m.sim.Frame(m.frame)), m.sim.Config().Seed, state)
	if m.status != "" {
		line += "  " + m.status
	}
	return line
}

// statusStyle paints the status bar in the frame background, with black or
// white text, whichever reads better on it.
func statusStyle(background string) lipgloss.Style {
	bg, err := config.ParseColor(background)
	if err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(config.Contrast(bg).Hex()))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	background := m.sim.Config().BackgroundColor
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	frame := RenderScreenOn(m.Screen(), background)
	return lipgloss.JoinVertical(lipgloss.Left,
		frame,
		statusStyle(background).Render(m.statusLine()),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Run starts the Bubble Tea program with a preview of sim.
func Run(sim *scene.Simulator, width, height int, opts PreviewOptions) error {
	model := NewModel(sim, width, height, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
