// Package loops renders the state of the profile loops.
package loops

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

const (
	featureWidth = 10
	stateWidth   = 9
	countWidth   = 7
	timeWidth    = 10
)

// Table shows one row per loop.
type Table struct {
	styles   *styles.Styles
	statuses []domain.LoopStatus
	width    int
}

// NewTable creates an empty loop table.
func NewTable(s *styles.Styles) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Table{styles: s, width: 80}
}

// SetStatuses replaces the rows.
func (t *Table) SetStatuses(statuses []domain.LoopStatus) {
	t.statuses = statuses
}

// Statuses returns the rows currently shown.
func (t *Table) Statuses() []domain.LoopStatus {
	return t.statuses
}

// SetWidth sets the table width.
func (t *Table) SetWidth(width int) {
	t.width = width
}

// Running returns how many loops are running.
func (t *Table) Running() int {
	n := 0
	for _, s := range t.statuses {
		if s.Running() {
			n++
		}
	}
	return n
}

// View renders the table.
func (t *Table) View() string {
	if len(t.statuses) == 0 {
		return t.styles.Muted.Render("No loop status yet")
	}

	rows := make([]string, 0, len(t.statuses)+1)
	rows = append(rows, t.styles.Header.Render(
		pad("LOOP", featureWidth)+pad("STATE", stateWidth)+pad("TICKS", countWidth)+
			pad("FAILS", countWidth)+pad("LAST", timeWidth)+"DETAIL"))

	for _, s := range t.statuses {
		rows = append(rows, t.renderRow(s))
	}

	return t.styles.Panel.Width(t.width - 2).Render(strings.Join(rows, "\n"))
}

func (t *Table) renderRow(s domain.LoopStatus) string {
	state := t.styles.Stopped.Render(pad(s.State.String(), stateWidth))
	if s.Running() {
		state = t.styles.Running.Render(pad(s.State.String(), stateWidth))
	}

	last := "-"
	if !s.LastTick.IsZero() {
		last = s.LastTick.Local().Format(time.TimeOnly)
	}

	row := t.styles.Normal.Render(pad(string(s.Feature), featureWidth)) +
		state +
		t.styles.Normal.Render(pad(fmt.Sprint(s.Ticks), countWidth)+pad(fmt.Sprint(s.Failures), countWidth)+pad(last, timeWidth)) +
		t.styles.Muted.Render(s.Detail)

	if s.Running() && s.LastError != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row,
			t.styles.Error.Render(strings.Repeat(" ", featureWidth)+"last error: "+s.LastError))
	}
	return row
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
