package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	confettiHeight    = 4
	confettiDensity   = 6 // columns per particle
	confettiFrameRate = 80 * time.Millisecond
)

var confettiGlyphs = []rune{'*', '+', '•', '·', '✦', '○'}

type particle struct {
	x, y  float64
	vy    float64
	glyph rune
	color lipgloss.Color
}

// confettiModel is a short falling-particle band drawn above the dashboard
// while the goal celebration is on.
type confettiModel struct {
	width     int
	particles []particle
	rng       *rand.Rand
}

func newConfettiModel(seed uint64) confettiModel {
	return confettiModel{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func confettiFrame() tea.Cmd {
	return tea.Tick(confettiFrameRate, func(time.Time) tea.Msg {
		return confettiFrameMsg{}
	})
}

func (c confettiModel) active() bool { return len(c.particles) > 0 }

// burst fills the band with fresh particles spread over width.
func (c *confettiModel) burst(width int) {
	c.width = max(width, 1)
	n := max(c.width/confettiDensity, 1)
	c.particles = make([]particle, n)
	for i := range c.particles {
		c.particles[i] = c.spawn(-c.rng.Float64() * confettiHeight)
	}
}

func (c *confettiModel) spawn(y float64) particle {
	return particle{
		x:     float64(c.rng.IntN(c.width)),
		y:     y,
		vy:    0.3 + c.rng.Float64()*0.5,
		glyph: confettiGlyphs[c.rng.IntN(len(confettiGlyphs))],
		color: confettiColors[c.rng.IntN(len(confettiColors))],
	}
}

// step advances one frame. Particles that fall out of the band come back at
// the top while respawn is set; otherwise they are dropped.
func (c *confettiModel) step(respawn bool) {
	kept := c.particles[:0]
	for _, p := range c.particles {
		p.y += p.vy
		if p.y >= confettiHeight {
			if !respawn {
				continue
			}
			p = c.spawn(0)
		}
		kept = append(kept, p)
	}
	c.particles = kept
}

func (c *confettiModel) stop() {
	c.particles = nil
}

func (c confettiModel) view() string {
	if !c.active() {
		return ""
	}
	grid := make([][]string, confettiHeight)
	for i := range grid {
		grid[i] = make([]string, c.width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}
	for _, p := range c.particles {
		row, col := int(p.y), int(p.x)
		if p.y < 0 || row >= confettiHeight || col < 0 || col >= c.width {
			continue
		}
		grid[row][col] = lipgloss.NewStyle().Foreground(p.color).Render(string(p.glyph))
	}
	lines := make([]string, confettiHeight)
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
