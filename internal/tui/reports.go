package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aquatrack/internal/hydration"
	"github.com/sadopc/aquatrack/internal/store"
)

// dayStartHour is the first hour shown when nothing was logged earlier.
const dayStartHour = 6

type hourBucket struct {
	TotalML int
	Count   int
}

// bucketByHour sums entries into local clock hours.
func bucketByHour(entries []store.LogEntry, loc *time.Location) [24]hourBucket {
	var out [24]hourBucket
	for _, e := range entries {
		h := e.CreatedAt.In(loc).Hour()
		out[h].TotalML += e.AmountML
		out[h].Count++
	}
	return out
}

// hourRange is the span of hours to chart: from dayStartHour (or the first
// hour with data, if earlier) through the current hour (or the last hour
// with data, if later).
func hourRange(buckets [24]hourBucket, nowHour int) (int, int) {
	from, to := dayStartHour, max(nowHour, dayStartHour)
	for h, b := range buckets {
		if b.Count == 0 {
			continue
		}
		from = min(from, h)
		to = max(to, h)
	}
	return from, to
}

type reportsModel struct {
	text   uiCopy
	width  int
	height int
	now    func() time.Time

	snap    hydration.Snapshot
	buckets [24]hourBucket

	chart barchart.Model
}

func newReportsModel(text uiCopy, now func() time.Time) reportsModel {
	if now == nil {
		now = time.Now
	}
	return reportsModel{
		text:  text,
		now:   now,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r *reportsModel) setSnapshot(s hydration.Snapshot) {
	r.snap = s
	r.buckets = bucketByHour(s.Entries, r.now().Location())
	r.buildChart()
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := hourRange(r.buckets, r.now().Hour())
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for h := from; h <= to; h++ {
		style := barStyle
		if r.buckets[h].Count == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%02d", h),
			Values: []barchart.BarValue{{
				Name:  fmt.Sprintf("%02d:00", h),
				Value: float64(r.buckets[h].TotalML),
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(r.text.HourlyTitle), "  ",
		mutedStyle.Render(r.now().Format("Mon Jan 02")),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderSummaryTable(w),
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.snap.Entries) == 0 {
		return mutedStyle.Render("  " + r.text.NoData)
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %10s %8s", "Hour", "Amount", "Entries")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 28))))

	for h, b := range r.buckets {
		if b.Count == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-8s %10s %8d", fmt.Sprintf("%02d:00", h), formatML(b.TotalML), b.Count))
	}
	rows = append(rows, fmt.Sprintf("  %-8s %10s %8d", "", highlightStyle.Render(formatML(r.snap.Total)), len(r.snap.Entries)))

	return strings.Join(rows, "\n")
}
