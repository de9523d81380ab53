package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/hozoor/internal/config"
)

type settingsModel struct {
	cfg    *config.Config
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	logDir        *string
	listenAddr    *string
	persianDigits *string
}

func newSettingsModel(cfg *config.Config) settingsModel {
	ld, la, pd := "", "", ""
	return settingsModel{
		cfg:           cfg,
		logDir:        &ld,
		listenAddr:    &la,
		persianDigits: &pd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.logDir = s.cfg.LogDirectory
	*s.listenAddr = s.cfg.ListenAddr
	*s.persianDigits = "on"
	if !s.cfg.PersianDigits {
		*s.persianDigits = "off"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Log directory").
				Description("Empty uses a logs/ directory next to the binary").
				Value(s.logDir),
			huh.NewInput().
				Title("Listen address").
				Description("Where the web widget binds").
				Value(s.listenAddr),
			huh.NewSelect[string]().Title("Persian digits in log files").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.persianDigits),
		).Title("hozoor"),
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

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	return func() tea.Msg {
		s.cfg.LogDirectory = *s.logDir
		s.cfg.ListenAddr = *s.listenAddr
		s.cfg.PersianDigits = *s.persianDigits == "on"

		if err := s.cfg.Save(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsSavedMsg{}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	logDir := s.cfg.LogDirectory
	if logDir == "" {
		logDir = s.cfg.LogDir() + " (default)"
	}
	digits := "on"
	if !s.cfg.PersianDigits {
		digits = "off"
	}

	rows := []string{
		title,
		"",
		settingRow("log directory", logDir),
		settingRow("listen address", s.cfg.ListenAddr),
		settingRow("persian digits", digits),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(18).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
