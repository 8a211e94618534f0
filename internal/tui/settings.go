package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aquatrack/internal/hydration"
)

// Setting is one read-only configuration line shown in the settings view.
type Setting struct {
	Key   string
	Value string
}

type settingsModel struct {
	ctrl   *hydration.Controller
	text   uiCopy
	width  int
	height int

	settings []Setting
	goal     int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	goalValue *string
}

func newSettingsModel(ctrl *hydration.Controller, text uiCopy, settings []Setting) settingsModel {
	g := ""
	return settingsModel{
		ctrl:      ctrl,
		text:      text,
		settings:  settings,
		goalValue: &g,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) setSnapshot(snap hydration.Snapshot) {
	s.goal = snap.Goal
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Goal):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.goalValue = fmt.Sprintf("%d", s.goal)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(s.text.GoalTitle).
				Validate(validPositive(s.text.NotANumber)).
				Value(s.goalValue),
		).Title(s.text.Settings),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		s.form = nil
		return s, setGoalCmd(s.ctrl, *s.goalValue)
	case huh.StateAborted:
		s.formActive = false
		s.form = nil
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render(s.text.Settings)

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	rows = append(rows, settingRow(s.text.GoalTitle, formatML(s.goal)))
	for _, setting := range s.settings {
		rows = append(rows, settingRow(setting.Key, setting.Value))
	}
	rows = append(rows, "", mutedStyle.Render(s.text.EditGoal))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(k, v string) string {
	label := lipgloss.NewStyle().Width(24).Render(k)
	return fmt.Sprintf("  %s %s", label, highlightStyle.Render(v))
}
