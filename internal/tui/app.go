package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aquatrack/internal/export"
	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/notify"
)

// Options tunes the presentation. Zero values select defaults.
type Options struct {
	Language string
	Confetti bool
	Presets  []int
	Settings []Setting

	// ExportDir receives export files; the home directory when empty.
	ExportDir string

	// ToastHidden is the receive side of NewToastRelay.
	ToastHidden <-chan struct{}

	Now func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	ctrl   *hydration.Controller
	toasts *notify.Channel
	opts   Options
	text   uiCopy
	keys   keyMap
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	snap      hydration.Snapshot
	dashboard dashboardModel
	reports   reportsModel
	settings  settingsModel
	confetti  confettiModel

	help   help.Model
	status string
}

func NewApp(ctrl *hydration.Controller, toasts *notify.Channel, opts Options) App {
	if len(opts.Presets) == 0 {
		opts.Presets = []int{250, 500}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Presets) > len(presetKeys) {
		opts.Presets = opts.Presets[:len(presetKeys)]
	}

	h := help.New()
	h.ShowAll = false

	text := copyFor(opts.Language)
	km := keys.withPresets(opts.Presets)
	snap := ctrl.Snapshot()

	a := App{
		ctrl:       ctrl,
		toasts:     toasts,
		opts:       opts,
		text:       text,
		keys:       km,
		activeView: viewDashboard,
		snap:       snap,
		dashboard:  newDashboardModel(ctrl, text, km, opts.Presets),
		reports:    newReportsModel(text, opts.Now),
		settings:   newSettingsModel(ctrl, text, opts.Settings),
		confetti:   newConfettiModel(uint64(opts.Now().UnixNano())),
		help:       h,
	}
	a.applySnapshot(snap)
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		loadCmd(a.ctrl),
		waitForChange(a.ctrl.Changes(), changedMsg{}),
		waitForChange(a.opts.ToastHidden, toastHiddenMsg{}),
		tickCmd(),
	)
}

func (a *App) applySnapshot(s hydration.Snapshot) {
	a.snap = s
	a.dashboard.setSnapshot(s)
	a.reports.setSnapshot(s)
	a.settings.setSnapshot(s)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Refresh):
			return a, loadCmd(a.ctrl)
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewChart
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, nil
		}

		// Quick-add works from every view.
		if a.activeView != viewDashboard {
			for _, b := range a.keys.Presets {
				if key.Matches(msg, b) {
					var cmd tea.Cmd
					a.dashboard, cmd = a.dashboard.update(msg)
					return a, cmd
				}
			}
		}

	case changedMsg:
		seen := a.snap.Crossings
		a.applySnapshot(a.ctrl.Snapshot())
		cmds = append(cmds, waitForChange(a.ctrl.Changes(), changedMsg{}))
		// Every crossing bursts, including one inside a running celebration.
		if a.snap.Crossings > seen && a.opts.Confetti {
			startFrames := !a.confetti.active()
			a.confetti.burst(max(a.width-4, 1))
			if startFrames {
				cmds = append(cmds, confettiFrame())
			}
		}
		return a, tea.Batch(cmds...)

	case toastHiddenMsg:
		return a, waitForChange(a.opts.ToastHidden, toastHiddenMsg{})

	case confettiFrameMsg:
		a.confetti.step(a.snap.Celebrating)
		if a.confetti.active() {
			return a, confettiFrame()
		}
		return a, nil

	case tickMsg:
		return a, tickCmd()

	case opDoneMsg:
		// Store failures already raised a toast; only input errors land here.
		if errors.Is(msg.err, hydration.ErrInvalidAmount) || errors.Is(msg.err, hydration.ErrInvalidGoal) {
			a.status = a.text.InvalidInput
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = a.text.ExportedTo + msg.path
		a.exportPicking = false
		return a, nil
	}

	// The spinner keeps ticking regardless of the active view.
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return a.text.Loading
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view(a.confettiView())
	case viewChart:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) confettiView() string {
	if !a.opts.Confetti {
		return ""
	}
	return a.confetti.view()
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range a.text.ViewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("aquatrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(a.keys)

	// A visible toast takes the place of the status line.
	right := ""
	if a.status != "" {
		right = mutedStyle.Render(" " + a.status)
	}
	if a.toasts != nil {
		if n, ok := a.toasts.Current(); ok {
			right = toastStyle(n.Kind).Render(" " + n.Text)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render(a.text.ExportTitle)
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(a.text.PickerHint))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	snap := a.ctrl.Snapshot()
	dir := a.opts.ExportDir
	dateStr := a.opts.Now().Format("2006-01-02")
	failed := a.text.ExportFailed

	return func() tea.Msg {
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return statusMsg{text: failed + err.Error(), isError: true}
			}
			dir = home
		}

		var path string
		if format == 0 {
			path = filepath.Join(dir, fmt.Sprintf("aquatrack-%s.csv", dateStr))
			if err := export.ToCSV(snap, path); err != nil {
				return statusMsg{text: failed + err.Error(), isError: true}
			}
		} else {
			path = filepath.Join(dir, fmt.Sprintf("aquatrack-%s.json", dateStr))
			if err := export.ToJSON(snap, path); err != nil {
				return statusMsg{text: failed + err.Error(), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
