package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/components/loops"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/styles"
)

// RefreshInterval is how often loop status is polled.
const RefreshInterval = time.Second

// maxHistory bounds the reply log kept on screen.
const maxHistory = 8

// Exchange is one command line and the reply it got.
type Exchange struct {
	Line  string
	Reply string
	Err   error
}

// App is the dashboard model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input *input.CommandInput
	table *loops.Table
	bar   *status.Bar

	history  []Exchange
	showHelp bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the dashboard with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewCommandInput(s),
		table:  loops.NewTable(s),
		bar:    status.NewBar(s, km),
	}, nil
}

// WithContext sets the context command lines are dispatched with.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("autoprofile"),
		a.input.Init(),
		a.refresh(),
		scheduleRefresh(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.RefreshTick:
		return a, tea.Batch(a.refresh(), scheduleRefresh())

	case messages.StatusRefreshed:
		a.table.SetStatuses(msg.Statuses)
		return a, nil

	case messages.ReplyReceived:
		a.record(Exchange{Line: msg.Line, Reply: msg.Reply, Err: msg.Err})
		if msg.Err != nil {
			a.bar.SetState(status.StateError)
		} else {
			a.bar.SetState(status.StateReady)
		}
		a.bar.SetMessage(firstLine(msg.Reply))
		return a, a.refresh()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil

	case keymap.Matches(key, a.keymap.Refresh):
		return a, a.refresh()

	case keymap.Matches(key, a.keymap.Clear):
		a.history = nil
		a.bar.Clear()
		return a, nil

	case keymap.Matches(key, a.keymap.Submit):
		line := a.input.Take()
		if line == "" {
			return a, nil
		}
		a.bar.SetState(status.StateWorking)
		a.bar.SetMessage(line)
		return a, a.dispatch(line)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	sections := []string{
		a.styles.Title.Render("autoprofile"),
		a.table.View(),
	}

	if len(a.history) > 0 {
		sections = append(sections, a.renderHistory())
	}

	sections = append(sections, a.input.View())

	if a.showHelp {
		sections = append(sections, a.renderHelp())
	}

	sections = append(sections, a.bar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHistory() string {
	var b strings.Builder
	for i, ex := range a.history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(a.styles.Muted.Render("> " + ex.Line))
		b.WriteByte('\n')
		if ex.Err != nil {
			b.WriteString(a.styles.Error.Render(ex.Reply))
		} else {
			b.WriteString(a.styles.Reply.Render(ex.Reply))
		}
	}
	return b.String()
}

func (a *App) renderHelp() string {
	lines := []string{a.styles.Header.Render("Keys")}
	for _, group := range a.keymap.FullHelp() {
		lines = append(lines, a.styles.Muted.Render(status.Hints(group)))
	}
	lines = append(lines,
		"",
		a.styles.Header.Render("Commands"),
		a.styles.Muted.Render(`.autopfp <degrees> <delete_previous>   .stopautopfp`),
		a.styles.Muted.Render(`.autobio "<text with {time}>"         .stopautobio`),
		a.styles.Muted.Render(`.autoname "<text with {time}>"        .stopautoname`),
		a.styles.Muted.Render(`.delpfp <count|0 for all>             .autostatus`),
	)
	return a.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (a *App) record(ex Exchange) {
	a.history = append(a.history, ex)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

func (a *App) refresh() tea.Cmd {
	automation := a.ports.Automation
	return func() tea.Msg {
		return messages.StatusRefreshed{Statuses: automation.Status()}
	}
}

func (a *App) dispatch(line string) tea.Cmd {
	ctx, commands := a.ctx, a.ports.Commands
	return func() tea.Msg {
		reply, err := commands.DispatchLine(ctx, line)
		return messages.ReplyReceived{Line: line, Reply: reply, Err: err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return messages.RefreshTick{At: t}
	})
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// SetDimensions sizes every component for the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.table.SetWidth(width)
	a.bar.SetWidth(width)
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// History returns the recent command exchanges, oldest first.
func (a *App) History() []Exchange {
	return a.history
}

// ShowingHelp reports whether the help panel is open.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Table returns the loop table.
func (a *App) Table() *loops.Table {
	return a.table
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.bar
}

// Input returns the command input.
func (a *App) Input() *input.CommandInput {
	return a.input
}
