// Package tui is the terminal shell of the presence tracker.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/hozoor/internal/config"
	"github.com/sadopc/hozoor/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	width   int
	height  int

	activeView viewState
	showHelp   bool

	trackerView trackerModel
	reports     reportsModel
	settings    settingsModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(tr *tracker.Tracker, cfg *config.Config) App {
	h := help.New()
	h.ShowAll = false

	return App{
		tracker:     tr,
		activeView:  viewTracker,
		trackerView: newTrackerModel(tr),
		reports:     newReportsModel(tr.Store()),
		settings:    newSettingsModel(cfg),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.trackerView.Init(),
		tickCmd(),
	)
}

// Half-second ticks drive the blink of the presence circle.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.trackerView.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// A huh form owns the keyboard while it is open.
		if a.activeView == viewSettings && a.settings.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Sequence(a.shutdown(), tea.Quit)
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTracker
			return a, a.trackerView.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.trackerView, cmd = a.trackerView.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case toggledMsg:
		if msg.active {
			a.status = "Session started"
		} else {
			a.status = "Session logged"
		}
		a.isError = false
		// The tracker view reloads its day total.
		return a.updateActiveView(msg)

	case settingsSavedMsg:
		a.status = "Settings saved (takes effect on restart)"
		a.isError = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// shutdown closes any open session and writes today's summary line.
func (a App) shutdown() tea.Cmd {
	return func() tea.Msg {
		if err := a.tracker.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
		return nil
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTracker:
		a.trackerView, cmd = a.trackerView.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewTracker:
		return a.trackerView.loadData()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTracker:
		content = a.trackerView.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("hozoor")
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
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	sessionInfo := ""
	if a.tracker.Active() {
		sessionInfo = successStyle.Render(" ● " + a.trackerView.elapsedText())
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
