package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokerequity/analysis"
)

type progressMsg analysis.Progress

type progressDoneMsg struct{}

// progressModel draws a bar for a running simulation.
type progressModel struct {
	title string
	bar   progress.Model
	last  analysis.Progress
}

func newProgressModel(title string) progressModel {
	return progressModel{
		title: title,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-4, 60), 10)
	case progressMsg:
		m.last = analysis.Progress(msg)
	case progressDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	ratio := 0.0
	if m.last.Total > 0 {
		ratio = float64(m.last.Done) / float64(m.last.Total)
	}
	return fmt.Sprintf("%s %d/%d\n%s\n", m.title, m.last.Done, m.last.Total, m.bar.ViewAs(ratio))
}

// withProgress runs fn, drawing a progress bar on w while it works when
// enabled. fn receives the callback to hand to the simulator, nil when
// disabled.
func withProgress(enabled bool, w io.Writer, title string, fn func(func(analysis.Progress)) error) error {
	if !enabled {
		return fn(nil)
	}

	p := tea.NewProgram(newProgressModel(title), tea.WithOutput(w), tea.WithInput(nil))
	finished := make(chan error, 1)
	go func() {
		_, err := p.Run()
		finished <- err
	}()

	err := fn(func(pr analysis.Progress) {
		p.Send(progressMsg(pr))
	})
	p.Send(progressDoneMsg{})
	if uiErr := <-finished; err == nil {
		err = uiErr
	}
	return err
}
