package progress

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const barWidth = 40

// DoneMsg signals the model that the simulation returned.
type DoneMsg struct {
	Summary string
	Err     error
}

type TickMsg time.Time

// Model is the bubbletea model rendering a Tracker.
type Model struct {
	title    string
	tracker  *Tracker
	snapshot Snapshot
	done     <-chan DoneMsg

	finished bool
	summary  string
	err      error
}

// NewModel() returns a Model of the tracker; done receives the outcome of the
// simulation.
func NewModel(title string, tracker *Tracker, done <-chan DoneMsg) Model {
	return Model{
		title:    title,
		tracker:  tracker,
		snapshot: tracker.Snapshot(),
		done:     done,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForDone(done <-chan DoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForDone(m.done), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.snapshot = m.tracker.Snapshot()
		return m, tickCmd()
	case DoneMsg:
		m.snapshot = m.tracker.Snapshot()
		m.finished = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	s := m.snapshot

	var b strings.Builder
	b.WriteString(m.title + "\n\n")

	filled := int(s.Fraction() * barWidth)
	b.WriteString("[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]")
	b.WriteString(fmt.Sprintf(" %5.1f%%\n\n", 100*s.Fraction()))

	b.WriteString(fmt.Sprintf("Accepted:   %d/%d\n", s.Accepted, s.Target))
	b.WriteString(fmt.Sprintf("Attempts:   %d\n", s.Attempts))
	b.WriteString(fmt.Sprintf("Rate:       %.4f\n", s.AcceptedRate()))
	b.WriteString(fmt.Sprintf("<R^2>:      %.3f\n", s.MeanSquaredDistance))
	b.WriteString(fmt.Sprintf("Elapsed:    %s\n", s.Elapsed.Round(time.Second)))
	b.WriteString(fmt.Sprintf("Remaining: ~%s\n", s.Remaining().Round(time.Second)))

	switch {
	case m.err != nil:
		b.WriteString(fmt.Sprintf("\nError: %v\n", m.err))
	case m.finished:
		b.WriteString("\n" + m.summary + "\n")
	default:
		b.WriteString("\nPress q to quit.\n")
	}
	return b.String()
}

// Err() returns the error the simulation returned, if any.
func (m Model) Err() error {
	return m.err
}
