package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/hozoor/internal/daylog"
	"github.com/sadopc/hozoor/internal/jalali"
)

type reportsModel struct {
	store  *daylog.Store
	width  int
	height int

	summaries []daylog.DaySummary
	offset    int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *daylog.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		// Totals treats the end as exclusive; to is the last shown day.
		summaries, err := r.store.Totals(from, to.AddDate(0, 0, 1))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reportsDataMsg{summaries: summaries}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	to := today.AddDate(0, 0, -7*r.offset)
	from := to.AddDate(0, 0, -6)
	return from, to
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.summaries = msg.summaries
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
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

	var bars []barchart.BarData
	for _, s := range r.summaries {
		hours := s.Total.Hours()

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if s.Total == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%d/%d", s.Jalali.Month, s.Jalali.Day),
			Values: []barchart.BarValue{
				{Name: s.Label, Value: hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		jalali.FromTime(from), jalali.FromTime(to),
	))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderSummaryTable(w)
	nav := mutedStyle.Render("  ←/→: older/newer week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.summaries) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-12s %10s %8s", "Date", "Jalali", "Total", "Segments"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 46))))

	var total time.Duration
	for _, s := range r.summaries {
		rows = append(rows, fmt.Sprintf("  %-12s %-12s %10s %8d",
			s.Date.Format("2006-01-02"), s.Jalali, daylog.FormatDuration(s.Total), s.Segments,
		))
		total += s.Total
	}

	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 46))))
	rows = append(rows, fmt.Sprintf("  %-12s %-12s %10s", "", "Total", daylog.FormatDuration(total)))

	return strings.Join(rows, "\n")
}
