package services

import (
	"context"
	"image"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// --- Mock implementations for automation testing ---

// mockProfileClient implements driven.ProfileClient for testing.
// It records every call name in order.
type mockProfileClient struct {
	mu        sync.Mutex
	photos    []domain.Photo
	photoData []byte
	calls     []string
	updates   []domain.ProfileUpdate
	uploads   int
	nextID    int

	photosErr  error
	uploadErrs []error
	// uploadGate, when set, holds UploadFile until it is closed or ctx ends.
	uploadGate chan struct{}
	updateErrs []error
}

func newMockProfileClient(photoCount int) *mockProfileClient {
	m := &mockProfileClient{photoData: []byte("original")}
	for range photoCount {
		m.addPhoto()
	}
	return m
}

// addPhoto prepends a photo; callers hold the lock once the mock is shared.
func (m *mockProfileClient) addPhoto() {
	m.nextID++
	photo := domain.Photo{ID: "photo-" + strconv.Itoa(m.nextID)}
	m.photos = append([]domain.Photo{photo}, m.photos...)
}

func (m *mockProfileClient) ProfilePhotos(_ context.Context, limit int) ([]domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "photos")
	if m.photosErr != nil {
		return nil, m.photosErr
	}
	photos := m.photos
	if limit > 0 && limit < len(photos) {
		photos = photos[:limit]
	}
	return append([]domain.Photo(nil), photos...), nil
}

func (m *mockProfileClient) DownloadProfilePhoto(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "download")
	if len(m.photos) == 0 {
		return nil, nil
	}
	return m.photoData, nil
}

func (m *mockProfileClient) DeletePhotos(_ context.Context, photos []domain.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete")
	remove := make(map[string]bool, len(photos))
	for _, p := range photos {
		remove[p.ID] = true
	}
	kept := m.photos[:0]
	for _, p := range m.photos {
		if !remove[p.ID] {
			kept = append(kept, p)
		}
	}
	m.photos = kept
	return nil
}

func (m *mockProfileClient) UploadFile(ctx context.Context, name string, data []byte) (domain.FileHandle, error) {
	m.mu.Lock()
	m.calls = append(m.calls, "upload")
	gate := m.uploadGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.FileHandle{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.uploadErrs) > 0 {
		err := m.uploadErrs[0]
		m.uploadErrs = m.uploadErrs[1:]
		if err != nil {
			return domain.FileHandle{}, err
		}
	}
	m.uploads++
	return domain.FileHandle{ID: "file-" + strconv.Itoa(m.uploads), Name: name, Size: len(data)}, nil
}

func (m *mockProfileClient) SetProfilePhoto(_ context.Context, _ domain.FileHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "set")
	m.addPhoto()
	return nil
}

func (m *mockProfileClient) UpdateProfile(_ context.Context, update domain.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update")
	if len(m.updateErrs) > 0 {
		err := m.updateErrs[0]
		m.updateErrs = m.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	m.updates = append(m.updates, update)
	return nil
}

func (m *mockProfileClient) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockProfileClient) countCalls(name string) int {
	n := 0
	for _, c := range m.getCalls() {
		if c == name {
			n++
		}
	}
	return n
}

func (m *mockProfileClient) photoCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.photos)
}

// abouts returns every bio pushed so far.
func (m *mockProfileClient) abouts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, u := range m.updates {
		if u.About != nil {
			out = append(out, *u.About)
		}
	}
	return out
}

// firstNames returns every first name pushed so far.
func (m *mockProfileClient) firstNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, u := range m.updates {
		if u.FirstName != nil {
			out = append(out, *u.FirstName)
		}
	}
	return out
}

// mockCodec implements driven.ImageCodec for testing.
type mockCodec struct {
	mu        sync.Mutex
	decodeErr error
	encodeErr error
	rotations []int
}

func (m *mockCodec) Decode(_ []byte) (image.Image, error) {
	if m.decodeErr != nil {
		return nil, m.decodeErr
	}
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (m *mockCodec) Rotate(img image.Image, degrees int) image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotations = append(m.rotations, degrees)
	return img
}

func (m *mockCodec) Encode(_ image.Image) ([]byte, error) {
	if m.encodeErr != nil {
		return nil, m.encodeErr
	}
	return []byte("png"), nil
}

func (m *mockCodec) getRotations() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.rotations...)
}

// mockAuditLog implements driven.AuditLog for testing.
type mockAuditLog struct {
	mu        sync.Mutex
	events    []domain.AuditEvent
	recordErr error
	pruned    int
}

func (m *mockAuditLog) Record(_ context.Context, event domain.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockAuditLog) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := append([]domain.AuditEvent(nil), m.events...)
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

func (m *mockAuditLog) Prune(_ context.Context, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned++
	return nil
}

func (m *mockAuditLog) actions() []domain.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Action)
	}
	return out
}

// mockObserver implements driven.LoopObserver for testing.
type mockObserver struct {
	mu        sync.Mutex
	started   []domain.Feature
	stopped   []domain.Feature
	succeeded int
	failed    int
	purged    int
}

func (m *mockObserver) LoopStarted(f domain.Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, f)
}

func (m *mockObserver) LoopStopped(f domain.Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = append(m.stopped, f)
}

func (m *mockObserver) TickSucceeded(domain.Feature, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
}

func (m *mockObserver) TickFailed(domain.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

func (m *mockObserver) PhotosPurged(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged += n
}

// Ensure mocks implement interfaces
var _ driven.ProfileClient = (*mockProfileClient)(nil)
var _ driven.ImageCodec = (*mockCodec)(nil)
var _ driven.AuditLog = (*mockAuditLog)(nil)
var _ driven.LoopObserver = (*mockObserver)(nil)

// --- Test harness ---

// testStart is the fake wall-clock time every test begins at.
var testStart = time.Date(2024, 5, 1, 13, 37, 0, 0, time.UTC)

type harness struct {
	svc      *AutomationService
	client   *mockProfileClient
	codec    *mockCodec
	audit    *mockAuditLog
	observer *mockObserver
	clock    *clockwork.FakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		client:   newMockProfileClient(1),
		codec:    &mockCodec{},
		audit:    &mockAuditLog{},
		observer: &mockObserver{},
		clock:    clockwork.NewFakeClockAt(testStart),
	}

	settings := domain.DefaultSettings()
	settings.Location = time.UTC
	h.svc = NewAutomationService(h.client, h.codec, h.audit, h.observer, h.clock, settings)

	t.Cleanup(func() {
		_ = h.svc.Shutdown(context.Background())
	})
	return h
}

func (h *harness) status(feature domain.Feature) domain.LoopStatus {
	for _, s := range h.svc.Status() {
		if s.Feature == feature {
			return s
		}
	}
	return domain.LoopStatus{}
}

// waitForTicks waits until the feature has made n successful mutations.
func (h *harness) waitForTicks(t *testing.T, feature domain.Feature, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.status(feature).Ticks >= n
	}, time.Second, 2*time.Millisecond, "waiting for %d %s ticks", n, feature)
}

// waitForFailures waits until the feature has recorded n failed mutations.
func (h *harness) waitForFailures(t *testing.T, feature domain.Feature, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.status(feature).Failures >= n
	}, time.Second, 2*time.Millisecond, "waiting for %d %s failures", n, feature)
}

// advance waits for the loop to block on the clock, then moves time forward.
func (h *harness) advance(t *testing.T, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.clock.BlockUntilContext(ctx, 1))
	h.clock.Advance(d)
}
