package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *mockDispatcher, *mockAutomation) {
	t.Helper()
	dispatcher := &mockDispatcher{reply: "Enabled bio clock"}
	automation := &mockAutomation{statuses: []domain.LoopStatus{
		{Feature: domain.FeatureRotation, State: domain.LoopStopped},
		{Feature: domain.FeatureBio, State: domain.LoopRunning, Ticks: 3},
		{Feature: domain.FeatureName, State: domain.LoopStopped},
	}}

	app, err := NewApp(&Ports{Commands: dispatcher, Automation: automation})
	require.NoError(t, err)
	return app, dispatcher, automation
}

func typeLine(app *App, line string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Automation: &mockAutomation{}})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingCommands)
}

func TestApp_WithContext(t *testing.T) {
	app, _, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, _, _ := newTestApp(t)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Same(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.StatusBar().Width())
	assert.Equal(t, 120, app.Input().Width())
}

func TestApp_StatusRefreshed(t *testing.T) {
	app, _, automation := newTestApp(t)

	app.Update(messages.StatusRefreshed{Statuses: automation.statuses})

	assert.Equal(t, 1, app.Table().Running())
	assert.Contains(t, app.View(), "bio")
}

func TestApp_RefreshTickPollsStatus(t *testing.T) {
	app, _, automation := newTestApp(t)

	cmd := app.refresh()
	msg := cmd()

	refreshed, ok := msg.(messages.StatusRefreshed)
	require.True(t, ok)
	assert.Equal(t, automation.statuses, refreshed.Statuses)

	_, next := app.Update(messages.RefreshTick{})
	assert.NotNil(t, next)
}

func TestApp_SubmitDispatchesLine(t *testing.T) {
	app, dispatcher, _ := newTestApp(t)
	typeLine(app, `.autobio "online {time}"`)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, status.StateWorking, app.StatusBar().State())
	assert.Equal(t, "", app.Input().Value())

	msg := cmd()
	reply, ok := msg.(messages.ReplyReceived)
	require.True(t, ok)
	assert.Equal(t, `.autobio "online {time}"`, reply.Line)
	assert.Equal(t, "Enabled bio clock", reply.Reply)
	assert.Equal(t, []string{`.autobio "online {time}"`}, dispatcher.lines)
}

func TestApp_SubmitEmptyLineDoesNothing(t *testing.T) {
	app, dispatcher, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, dispatcher.lines)
	assert.Equal(t, status.StateReady, app.StatusBar().State())
}

func TestApp_ReplyReceived(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(messages.ReplyReceived{
		Line:  ".autostatus",
		Reply: "rotation: stopped\nbio: running",
	})

	assert.NotNil(t, cmd)
	require.Len(t, app.History(), 1)
	assert.Equal(t, status.StateReady, app.StatusBar().State())
	assert.Equal(t, "rotation: stopped", app.StatusBar().Message())
	assert.Contains(t, app.View(), "> .autostatus")
}

func TestApp_ReplyReceivedError(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(messages.ReplyReceived{
		Line:  "bogus",
		Reply: `Unknown command "bogus"`,
		Err:   errors.New("unknown command: bogus"),
	})

	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Equal(t, `Unknown command "bogus"`, app.StatusBar().Message())
}

func TestApp_HistoryIsBounded(t *testing.T) {
	app, _, _ := newTestApp(t)

	for i := 0; i < maxHistory+3; i++ {
		app.Update(messages.ReplyReceived{Line: fmt.Sprintf("line-%d", i), Reply: "ok"})
	}

	history := app.History()
	require.Len(t, history, maxHistory)
	assert.Equal(t, "line-3", history[0].Line)
	assert.Equal(t, fmt.Sprintf("line-%d", maxHistory+2), history[maxHistory-1].Line)
}

func TestApp_ClearKey(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(messages.ReplyReceived{Line: ".autostatus", Reply: "ok"})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Empty(t, app.History())
	assert.Equal(t, "", app.StatusBar().Message())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, app.ShowingHelp())
	assert.Contains(t, app.View(), ".delpfp <count|0 for all>")

	app.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.False(t, app.ShowingHelp())
}

func TestApp_RefreshKey(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.StatusRefreshed)
	assert.True(t, ok)
}

func TestApp_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t)

			_, cmd := app.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestApp_TypedQDoesNotQuit(t *testing.T) {
	app, _, _ := newTestApp(t)

	typeLine(app, "q")

	assert.Equal(t, "q", app.Input().Value())
}

func TestApp_View(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.SetDimensions(120, 40)

	view := app.View()

	assert.Contains(t, view, "autoprofile")
	assert.Contains(t, view, "Command:")
	assert.Contains(t, view, "esc: quit")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", firstLine("a\nb"))
	assert.Equal(t, "single", firstLine("single"))
}
