package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/farcloser/soundcheck"
)

const barWidth = 40

// Tracker receives one update per analyzed file. Update is called from worker goroutines.
type Tracker interface {
	Update(done, total int, record *soundcheck.Record)
	Stop()
}

// NewTracker picks the interactive view when out is a terminal and plain is
// false, and falls back to one line per file otherwise.
// cancel is invoked when the user presses ctrl+c inside the interactive view,
// where the terminal is in raw mode and SIGINT is not delivered.
func NewTracker(out *os.File, total int, plain bool, cancel context.CancelFunc) Tracker {
	if !plain && term.IsTerminal(int(out.Fd())) { //nolint:gosec // fd fits in int
		return startInteractive(out, total, cancel)
	}

	return NewPlain(out)
}

// Plain prints "[n/total] path" lines.
type Plain struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out}
}

func (p *Plain) Update(done, total int, record *soundcheck.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "[%d/%d] %s\n", done, total, record.FilePath)
}

func (*Plain) Stop() {}

// ProgressMsg reports one finished file to the interactive view.
type ProgressMsg struct {
	Done     int
	Total    int
	Path     string
	Playable bool
	Clipped  bool
}

type finishedMsg struct{}

type interactive struct {
	program *tea.Program
	done    chan struct{}
}

func startInteractive(out io.Writer, total int, cancel context.CancelFunc) *interactive {
	view := &interactive{
		program: tea.NewProgram(NewProgressModel(total, cancel), tea.WithOutput(out)),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(view.done)

		if _, err := view.program.Run(); err != nil {
			slog.Debug("ui.interactive", "error", err)
		}
	}()

	return view
}

func (i *interactive) Update(done, total int, record *soundcheck.Record) {
	i.program.Send(ProgressMsg{
		Done:     done,
		Total:    total,
		Path:     record.FilePath,
		Playable: record.Playable,
		Clipped:  record.ContainsClipping,
	})
}

// Stop ends the program and waits until the terminal is restored.
func (i *interactive) Stop() {
	i.program.Send(finishedMsg{})
	<-i.done
}

// ProgressModel is the bubbletea model behind the interactive view.
type ProgressModel struct {
	Total       int
	Done        int
	Unplayable  int
	Clipped     int
	Current     string
	Finished    bool
	Interrupted bool

	cancel context.CancelFunc
}

func NewProgressModel(total int, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{Total: total, cancel: cancel}
}

func (ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Interrupted = true

			if m.cancel != nil {
				m.cancel()
			}

			return m, tea.Quit
		}

	case ProgressMsg:
		m.Done = msg.Done
		m.Total = msg.Total
		m.Current = msg.Path

		if !msg.Playable {
			m.Unplayable++
		}

		if msg.Clipped {
			m.Clipped++
		}

	case finishedMsg:
		m.Finished = true

		return m, tea.Quit
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.Finished {
		return ""
	}

	var b strings.Builder

	b.WriteString(Title("Processing files"))
	b.WriteString("\n")
	b.WriteString(renderBar(m.Done, m.Total))
	b.WriteString("\n")

	current := "waiting for the first result"
	if m.Current != "" {
		current = filepath.Base(m.Current)
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("[%d/%d] %s", m.Done, m.Total, current)))
	b.WriteString("\n")

	if m.Clipped > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("clipping: %d", m.Clipped)))
		b.WriteString("  ")
	}

	if m.Unplayable > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("unplayable: %d", m.Unplayable)))
	}

	if m.Interrupted {
		b.WriteString("\n")
		b.WriteString(Warning("Interrupted, finishing files in flight..."))
	}

	b.WriteString("\n")

	return b.String()
}

func renderBar(done, total int) string {
	progress := 0.0
	if total > 0 {
		progress = float64(done) / float64(total)
	}

	filled := min(int(progress*barWidth), barWidth)

	return fmt.Sprintf("%s%s %d%%",
		okStyle.Render(strings.Repeat("█", filled)),
		dimStyle.Render(strings.Repeat("░", barWidth-filled)),
		int(progress*100)) //nolint:mnd // percent
}
