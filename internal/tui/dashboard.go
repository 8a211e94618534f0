package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aquatrack/internal/hydration"
)

type formKind int

const (
	formNone formKind = iota
	formAmount
	formGoal
	formReset
)

type dashboardModel struct {
	ctrl    *hydration.Controller
	text    uiCopy
	keys    keyMap
	presets []int
	width   int
	height  int

	snap   hydration.Snapshot
	cursor int

	gauge   progress.Model
	spinner spinner.Model

	formActive bool
	formKind   formKind
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formValue   *string
	formConfirm *bool
}

func newDashboardModel(ctrl *hydration.Controller, text uiCopy, km keyMap, presets []int) dashboardModel {
	v, ok := "", false
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = highlightStyle
	return dashboardModel{
		ctrl:        ctrl,
		text:        text,
		keys:        km,
		presets:     presets,
		gauge:       progress.New(progress.WithGradient(string(colorSecondary), string(colorPrimary))),
		spinner:     sp,
		formValue:   &v,
		formConfirm: &ok,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.spinner.Tick
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.gauge.Width = max(w-12, 10)
}

func (d *dashboardModel) setSnapshot(s hydration.Snapshot) {
	d.snap = s
	if d.cursor >= len(s.Entries) {
		d.cursor = max(len(s.Entries)-1, 0)
	}
}

func (d dashboardModel) syncing() bool {
	return d.snap.Loading || d.snap.Pending > 0
}

// --- Controller commands ---

func addCmd(ctrl *hydration.Controller, amount int) tea.Cmd {
	return func() tea.Msg {
		_, err := ctrl.AddEntry(context.Background(), amount)
		return opDoneMsg{op: "add", err: err}
	}
}

func addInputCmd(ctrl *hydration.Controller, raw string) tea.Cmd {
	return func() tea.Msg {
		_, err := ctrl.AddEntryInput(context.Background(), raw)
		return opDoneMsg{op: "add", err: err}
	}
}

func removeCmd(ctrl *hydration.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "remove", err: ctrl.RemoveEntry(context.Background(), id)}
	}
}

func resetCmd(ctrl *hydration.Controller) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "reset", err: ctrl.ResetDay(context.Background())}
	}
}

func setGoalCmd(ctrl *hydration.Controller, raw string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "goal", err: ctrl.SetGoal(raw)}
	}
}

func loadCmd(ctrl *hydration.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Load(context.Background())
		return nil
	}
}

// --- Update ---

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(tick)
		return d, cmd
	}

	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		for i, b := range d.keys.Presets {
			if key.Matches(msg, b) {
				return d, addCmd(d.ctrl, d.presets[i])
			}
		}

		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.snap.Entries)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if d.cursor < len(d.snap.Entries) {
				return d, removeCmd(d.ctrl, d.snap.Entries[d.cursor].ID)
			}
		case key.Matches(msg, keys.Custom):
			return d.showForm(formAmount)
		case key.Matches(msg, keys.Goal):
			return d.showForm(formGoal)
		case key.Matches(msg, keys.Reset):
			if len(d.snap.Entries) > 0 {
				return d.showForm(formReset)
			}
		}
	}
	return d, nil
}

// validPositive is the huh validator for amount and goal inputs.
func validPositive(msg string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return errors.New(msg)
		}
		return nil
	}
}

func (d dashboardModel) showForm(kind formKind) (dashboardModel, tea.Cmd) {
	*d.formValue = ""
	*d.formConfirm = false

	var field huh.Field
	switch kind {
	case formAmount:
		field = huh.NewInput().
			Title(d.text.AmountTitle).
			Placeholder(strconv.Itoa(firstOr(d.presets, 250))).
			Validate(validPositive(d.text.NotANumber)).
			Value(d.formValue)
	case formGoal:
		*d.formValue = strconv.Itoa(d.snap.Goal)
		field = huh.NewInput().
			Title(d.text.GoalTitle).
			Validate(validPositive(d.text.NotANumber)).
			Value(d.formValue)
	case formReset:
		field = huh.NewConfirm().
			Title(d.text.ResetTitle).
			Affirmative(d.text.ResetYes).
			Negative(d.text.ResetNo).
			Value(d.formConfirm)
	default:
		return d, nil
	}

	d.form = huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(true).
		WithShowErrors(true).
		WithWidth(max(d.width-8, 20))
	d.formKind = kind
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			return d.closeForm(), nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		kind, value, confirm := d.formKind, *d.formValue, *d.formConfirm
		d = d.closeForm()
		switch kind {
		case formAmount:
			return d, addInputCmd(d.ctrl, value)
		case formGoal:
			return d, setGoalCmd(d.ctrl, value)
		case formReset:
			if confirm {
				return d, resetCmd(d.ctrl)
			}
		}
		return d, nil
	case huh.StateAborted:
		return d.closeForm(), nil
	}

	return d, cmd
}

func (d dashboardModel) closeForm() dashboardModel {
	d.formActive = false
	d.formKind = formNone
	d.form = nil
	return d
}

func firstOr(xs []int, fallback int) int {
	if len(xs) > 0 {
		return xs[0]
	}
	return fallback
}

// --- View ---

func (d dashboardModel) view(confetti string) string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	parts := []string{}
	if confetti != "" {
		parts = append(parts, confetti)
	}
	parts = append(parts, d.renderProgressPanel(contentWidth))

	if d.formActive && d.form != nil {
		parts = append(parts, activePanelStyle.Width(contentWidth).Render(d.form.View()))
	} else {
		parts = append(parts, d.renderHistoryPanel(contentWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (d dashboardModel) renderProgressPanel(w int) string {
	s := d.snap

	style := totalStyle
	if s.Phase == hydration.GoalMet {
		style = totalMetStyle
	}
	total := style.Render(formatML(s.Total))
	goal := mutedStyle.Render(" / " + formatML(s.Goal))

	header := titleStyle.Render(d.text.Today) + "  " + total + goal
	if d.syncing() {
		header += "  " + d.spinner.View() + mutedStyle.Render(d.text.Syncing)
	}

	gauge := d.gauge.ViewAs(float64(clampPercent(s.Percentage)) / 100)
	pct := highlightStyle.Render(formatPercent(s.Percentage)) + " " + mutedStyle.Render(d.text.OfGoal)

	motivation := mutedStyle.Italic(true).Render(d.text.motivation(s.Percentage))
	if s.Celebrating {
		motivation = successStyle.Bold(true).Render("🎉 " + d.text.GoalReached)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", gauge, pct, "", motivation)
	if s.Celebrating {
		return celebratePanelStyle.Width(w).Render(content)
	}
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderHistoryPanel(w int) string {
	title := titleStyle.Render(d.text.History)
	if len(d.snap.Entries) > 0 {
		title += mutedStyle.Render(fmt.Sprintf("  (%d)", len(d.snap.Entries)))
	}

	if len(d.snap.Entries) == 0 {
		msg := d.text.NoEntries
		if d.snap.Loading {
			msg = d.text.Loading
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(msg)),
		)
	}

	// Keep the cursor row on screen.
	visible := max(d.height-16, 3)
	start := 0
	if d.cursor >= visible {
		start = d.cursor - visible + 1
	}
	end := min(start+visible, len(d.snap.Entries))

	rows := []string{title}
	for i := start; i < end; i++ {
		e := d.snap.Entries[i]
		mark := successStyle.Render("✓")
		itemStyle := normalItemStyle
		if hydration.IsProvisional(e.ID) {
			mark = mutedStyle.Render("…")
			itemStyle = pendingItemStyle
		}
		cursor := "  "
		if i == d.cursor {
			cursor = "> "
			itemStyle = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s  %8s", cursor, e.CreatedAt.Local().Format("15:04"), formatML(e.AmountML))
		rows = append(rows, itemStyle.Render(line)+" "+mark)
	}
	if end < len(d.snap.Entries) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(d.snap.Entries)-end)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
