package ui_test

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farcloser/soundcheck"
	"github.com/farcloser/soundcheck/internal/report"
	"github.com/farcloser/soundcheck/internal/ui"
)

func TestProgressModel(t *testing.T) {
	t.Parallel()

	var model tea.Model = ui.NewProgressModel(4, nil)

	model, _ = model.Update(ui.ProgressMsg{Done: 1, Total: 4, Path: "/m/a.mp3", Playable: true})
	model, _ = model.Update(ui.ProgressMsg{Done: 2, Total: 4, Path: "/m/b.mp3", Playable: false})
	model, _ = model.Update(ui.ProgressMsg{Done: 3, Total: 4, Path: "/m/c.mp3", Playable: true, Clipped: true})

	state, ok := model.(ui.ProgressModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if state.Done != 3 || state.Unplayable != 1 || state.Clipped != 1 || state.Current != "/m/c.mp3" {
		t.Errorf("state: %+v", state)
	}

	view := model.View()
	if !strings.Contains(view, "[3/4] c.mp3") || !strings.Contains(view, "75%") {
		t.Errorf("view:\n%s", view)
	}
}

func TestProgressModelCtrlCCancels(t *testing.T) {
	t.Parallel()

	cancelled := false
	model := ui.NewProgressModel(10, func() { cancelled = true })

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("cancel was not called")
	}

	if cmd == nil {
		t.Fatal("expected a quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}

	if state, _ := next.(ui.ProgressModel); !state.Interrupted {
		t.Error("model should be marked interrupted")
	}
}

func TestPlain(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	tracker := ui.NewPlain(&out)
	tracker.Update(1, 2, &soundcheck.Record{FilePath: "/m/a.mp3"})
	tracker.Update(2, 2, &soundcheck.Record{FilePath: "/m/b.mp3"})
	tracker.Stop()

	if out.String() != "[1/2] /m/a.mp3\n[2/2] /m/b.mp3\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	clean := ui.RenderSummary(report.Summary{Total: 2, Playable: 2})
	if !strings.Contains(clean, "Total files processed: 2") || strings.Contains(clean, "Unplayable") {
		t.Errorf("clean summary:\n%s", clean)
	}

	broken := ui.RenderSummary(report.Summary{Total: 3, Playable: 1, Unplayable: 2, WithClipping: 1})
	if !strings.Contains(broken, "Unplayable files: 2") || !strings.Contains(broken, "Files with clipping: 1") {
		t.Errorf("summary:\n%s", broken)
	}
}
