package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// mockDispatcher implements LineDispatcher for testing.
type mockDispatcher struct {
	mu    sync.Mutex
	lines []string
	reply string
	err   error
}

func (m *mockDispatcher) DispatchLine(_ context.Context, line string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	return m.reply, m.err
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
