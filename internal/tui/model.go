package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"shrink/internal/resizer"
)

const (
	defaultLogWidth  = 72
	defaultLogHeight = 12
)

// Model renders the live status log of one resize run. It quits once the
// updates channel is closed; ctrl+c only requests cancellation, so the
// summary lines of a cancelled run are still shown.
type Model struct {
	updates    <-chan resizer.Event
	cancel     context.CancelFunc
	log        viewport.Model
	lines      []string
	started    time.Time
	width      int
	total      int
	seen       int
	processed  int
	skipped    int
	errors     int
	cancelling bool
	quitting   bool
}

type doneMsg struct{}

type eventMsg resizer.Event

func NewModel(updates <-chan resizer.Event, cancel context.CancelFunc) Model {
	return Model{
		updates: updates,
		cancel:  cancel,
		log:     viewport.New(defaultLogWidth, defaultLogHeight),
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(resizer.Event(msg))
		return m, listenForEvents(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.cancelling {
			m.cancelling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.log.Width = max(20, msg.Width-4)
		m.log.Height = max(4, msg.Height-10)
		m.log.GotoBottom()
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) apply(ev resizer.Event) {
	switch ev.Kind {
	case resizer.EventStart:
		m.total = ev.Entries
	case resizer.EventFile:
		m.seen++
		switch {
		case ev.Result.Outcome == resizer.OutcomeProcessed:
			m.processed++
		case ev.Result.Outcome.Skipped():
			m.skipped++
		default:
			m.errors++
		}
	}
	if ev.Message != "" {
		m.lines = append(m.lines, ev.Message)
		m.log.SetContent(strings.Join(m.lines, "\n"))
		m.log.GotoBottom()
	}
}

// Lines returns every status line received so far.
func (m Model) Lines() []string {
	return m.lines
}

func (m Model) View() string {
	counts := successStyle.Render(fmt.Sprintf("processed:%d", m.processed)) + "  " +
		warnStyle.Render(fmt.Sprintf("skipped:%d", m.skipped)) + "  " +
		errorStyle.Render(fmt.Sprintf("errors:%d", m.errors))

	// The last frame stays on screen, so it carries the whole log.
	if m.quitting {
		final := []string{
			titleStyle.Render("shrink"),
			labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.seen, m.total)) + "  " + counts,
		}
		return strings.Join(append(final, m.lines...), "\n") + "\n"
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.seen) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("shrink"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.seen, m.total)) + "  " + counts,
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
		logBoxStyle.Render(m.log.View()),
	}
	if m.cancelling {
		lines = append(lines, warnStyle.Render("Cancelling after the current file..."))
	}

	return strings.Join(lines, "\n")
}

func listenForEvents(updates <-chan resizer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
