package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// dispatchCall records one Dispatch invocation.
type dispatchCall struct {
	name string
	args []string
}

// mockDispatcher implements Dispatcher for testing.
type mockDispatcher struct {
	mu    sync.Mutex
	calls []dispatchCall
	reply string
	err   error
}

func (m *mockDispatcher) Dispatch(_ context.Context, name string, args []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, dispatchCall{name: name, args: args})
	return m.reply, m.err
}

func (m *mockDispatcher) lastCall() dispatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return dispatchCall{}
	}
	return m.calls[len(m.calls)-1]
}

// mockAutomation implements driving.ProfileAutomation; only Status is used.
type mockAutomation struct {
	statuses []domain.LoopStatus
}

func (m *mockAutomation) StartRotation(context.Context, int, bool) error { return nil }
func (m *mockAutomation) StopRotation(context.Context) error             { return nil }
func (m *mockAutomation) StartBioClock(context.Context, string) error    { return nil }
func (m *mockAutomation) StopBioClock(context.Context) error             { return nil }
func (m *mockAutomation) StartNameClock(context.Context, string) error   { return nil }
func (m *mockAutomation) StopNameClock(context.Context) error            { return nil }
func (m *mockAutomation) PurgePhotos(context.Context, int) (int, error)  { return 0, nil }
func (m *mockAutomation) Status() []domain.LoopStatus                    { return m.statuses }
func (m *mockAutomation) ApplySettings(domain.Settings) error            { return nil }
func (m *mockAutomation) Shutdown(context.Context) error                 { return nil }
