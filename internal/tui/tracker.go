package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/hozoor/internal/daylog"
	"github.com/sadopc/hozoor/internal/jalali"
	"github.com/sadopc/hozoor/internal/tracker"
)

type trackerModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	todayTotal time.Duration
	blink      bool
}

func newTrackerModel(tr *tracker.Tracker) trackerModel {
	return trackerModel{tracker: tr}
}

func (m trackerModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *trackerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m trackerModel) loadData() tea.Cmd {
	return func() tea.Msg {
		total, err := m.tracker.TodayTotal()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return trackerDataMsg{todayTotal: total}
	}
}

func (m trackerModel) toggle() tea.Cmd {
	return func() tea.Msg {
		active, err := m.tracker.Toggle()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return toggledMsg{active: active}
	}
}

func (m trackerModel) summarize() tea.Cmd {
	return func() tea.Msg {
		if err := m.tracker.Store().SummarizeDay(time.Now()); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return statusMsg{text: "Today summarized"}
	}
}

func (m trackerModel) update(msg tea.Msg) (trackerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerDataMsg:
		m.todayTotal = msg.todayTotal
		return m, nil

	case toggledMsg:
		// Stopping a session appends a segment, so the day total moved.
		return m, m.loadData()

	case tickMsg:
		m.blink = !m.blink
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			return m, m.toggle()
		case key.Matches(msg, keys.Summarize):
			return m, m.summarize()
		}
	}
	return m, nil
}

func (m trackerModel) elapsedText() string {
	return daylog.FormatDuration(m.tracker.Elapsed())
}

// circleArt is what blinks on and off while a session is open.
const circleArt = "●"

func (m trackerModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}

	w := m.width - 4
	now := time.Now()

	dateLine := highlightStyle.Render(jalali.DateLabel(now, true))

	var circle, timeDisplay, indicator string
	if m.tracker.Active() {
		style := circleOnStyle
		if m.blink {
			style = circleDimStyle
		}
		circle = style.Width(w - 6).Render(circleArt)
		timeDisplay = timerRunningStyle.Width(w - 6).Render(daylog.FormatDuration(m.tracker.Elapsed()))
		indicator = successStyle.Render("حاضر")
	} else {
		circle = circleOffStyle.Width(w - 6).Render(circleArt)
		timeDisplay = timerStyle.Width(w - 6).Render("0:00:00")
		indicator = mutedStyle.Render("غایب — space to start")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		dateLine,
		"",
		circle,
		timeDisplay,
		indicator,
	)

	var panel string
	if m.tracker.Active() {
		panel = activePanelStyle.Width(w).Render(content)
	} else {
		panel = panelStyle.Width(w).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, panel, m.renderTotalPanel(w))
}

func (m trackerModel) renderTotalPanel(w int) string {
	total := m.todayTotal + m.tracker.Elapsed()

	title := titleStyle.Render("Today")
	value := highlightStyle.Render(daylog.FormatHM(total))
	header := fmt.Sprintf("%s  %s", title, value)

	hint := mutedStyle.Render("s: append today's summary line")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, hint))
}
