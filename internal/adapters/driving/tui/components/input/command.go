// Package input provides the command line component for the dashboard.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the command line is empty.
const Placeholder = `.autobio "online {time}"`

// CommandInput wraps a bubbles textinput for typing chat commands.
type CommandInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewCommandInput creates a focused command input.
func NewCommandInput(s *styles.Styles) *CommandInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &CommandInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (c *CommandInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CommandInput) Update(msg tea.Msg) (*CommandInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the command input.
func (c *CommandInput) View() string {
	label := c.styles.Title.Render("Command: ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the typed line.
func (c *CommandInput) Value() string {
	return c.textinput.Value()
}

// SetValue replaces the typed line.
func (c *CommandInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Take returns the trimmed line and clears the input.
func (c *CommandInput) Take() string {
	line := strings.TrimSpace(c.textinput.Value())
	c.textinput.Reset()
	return line
}

// Focused returns whether the input is focused.
func (c *CommandInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CommandInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - 16
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CommandInput) Width() int {
	return c.width
}
