package tui

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewChart
	viewSettings

	viewCount
)

// --- Messages ---

// changedMsg means the controller state moved and a new snapshot is due.
type changedMsg struct{}

type toastHiddenMsg struct{}

type tickMsg time.Time

// opDoneMsg reports the outcome of a controller call run in a command.
type opDoneMsg struct {
	op  string
	err error
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type confettiFrameMsg struct{}

// --- Commands ---

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks on ch and turns each signal into msg. It has to be
// reissued after every delivery.
func waitForChange(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

// NewToastRelay returns a hide callback for notify.New and the channel the
// App listens on to redraw when a toast expires.
func NewToastRelay() (func(), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}, ch
}

// --- Helpers ---

// formatML renders a volume with thousands separators, e.g. "1,250 ml".
func formatML(ml int) string {
	return groupThousands(ml) + " ml"
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func formatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// clampPercent bounds p to [0, 100] for gauge width; the label keeps the
// real value.
func clampPercent(p int) int {
	return max(0, min(p, 100))
}
