package plugin

import (
	"context"
	"sync"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
)

// mockAutomation implements driving.ProfileAutomation for testing.
type mockAutomation struct {
	mu    sync.Mutex
	calls []string

	rotationStep   int
	rotationDelete bool
	template       string
	purgeCount     int

	startErr  error
	stopErr   error
	purged    int
	purgeErr  error
	statuses  []domain.LoopStatus
	applied   []domain.Settings
	shutdowns int
}

var _ driving.ProfileAutomation = (*mockAutomation)(nil)

func (m *mockAutomation) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockAutomation) StartRotation(_ context.Context, step int, deletePrevious bool) error {
	m.record("StartRotation")
	m.rotationStep, m.rotationDelete = step, deletePrevious
	return m.startErr
}

func (m *mockAutomation) StopRotation(context.Context) error {
	m.record("StopRotation")
	return m.stopErr
}

func (m *mockAutomation) StartBioClock(_ context.Context, template string) error {
	m.record("StartBioClock")
	m.template = template
	return m.startErr
}

func (m *mockAutomation) StopBioClock(context.Context) error {
	m.record("StopBioClock")
	return m.stopErr
}

func (m *mockAutomation) StartNameClock(_ context.Context, template string) error {
	m.record("StartNameClock")
	m.template = template
	return m.startErr
}

func (m *mockAutomation) StopNameClock(context.Context) error {
	m.record("StopNameClock")
	return m.stopErr
}

func (m *mockAutomation) PurgePhotos(_ context.Context, count int) (int, error) {
	m.record("PurgePhotos")
	m.purgeCount = count
	return m.purged, m.purgeErr
}

func (m *mockAutomation) Status() []domain.LoopStatus {
	m.record("Status")
	return m.statuses
}

func (m *mockAutomation) ApplySettings(s domain.Settings) error {
	m.record("ApplySettings")
	m.applied = append(m.applied, s)
	return nil
}

func (m *mockAutomation) Shutdown(context.Context) error {
	m.record("Shutdown")
	m.shutdowns++
	return nil
}

func (m *mockAutomation) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// readyModule returns a module wired to a fresh mock.
func readyModule() (*Module, *mockAutomation) {
	m := NewModule()
	a := &mockAutomation{}
	m.ClientReady(a)
	return m, a
}
