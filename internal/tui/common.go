package tui

import (
	"time"

	"github.com/sadopc/hozoor/internal/daylog"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTracker viewState = iota
	viewReports
	viewSettings
)

var viewNames = []string{"Tracker", "Reports", "Settings"}

// --- Messages ---

type toggledMsg struct {
	active bool
}

type trackerDataMsg struct {
	todayTotal time.Duration
}

type reportsDataMsg struct {
	summaries []daylog.DaySummary
}

type statusMsg struct {
	text    string
	isError bool
}

type settingsSavedMsg struct{}

type tickMsg time.Time
