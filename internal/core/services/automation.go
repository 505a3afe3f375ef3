package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// Ensure AutomationService implements the interface.
var _ driving.ProfileAutomation = (*AutomationService)(nil)

// AutomationService owns the three profile loops and the photo purge.
// The loops never share state with each other.
type AutomationService struct {
	client   driven.ProfileClient
	codec    driven.ImageCodec
	audit    driven.AuditLog
	observer driven.LoopObserver
	clock    clockwork.Clock

	mu       sync.RWMutex
	settings domain.Settings

	rotation *rotationFeature
	bio      *clockFeature
	name     *clockFeature
}

// NewAutomationService creates the automation service.
// The audit log and observer are optional; a nil clock uses the real clock.
func NewAutomationService(
	client driven.ProfileClient,
	codec driven.ImageCodec,
	audit driven.AuditLog,
	observer driven.LoopObserver,
	clock clockwork.Clock,
	settings domain.Settings,
) *AutomationService {
	if observer == nil {
		observer = noopObserver{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if err := settings.Validate(); err != nil {
		logger.Error("automation: %v, using defaults", err)
		settings = domain.DefaultSettings()
	}

	s := &AutomationService{
		client:   client,
		codec:    codec,
		audit:    audit,
		observer: observer,
		clock:    clock,
		settings: settings,
	}

	s.rotation = &rotationFeature{
		loop: newPeriodicLoop(domain.FeatureRotation, clock, observer, settings),
	}
	s.bio = &clockFeature{
		loop:        newPeriodicLoop(domain.FeatureBio, clock, observer, settings),
		startAction: domain.AuditStartBio,
		stopAction:  domain.AuditStopBio,
		update:      domain.AboutUpdate,
	}
	s.name = &clockFeature{
		loop:        newPeriodicLoop(domain.FeatureName, clock, observer, settings),
		startAction: domain.AuditStartName,
		stopAction:  domain.AuditStopName,
		update:      domain.FirstNameUpdate,
	}

	return s
}

// Settings returns the active settings.
func (s *AutomationService) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// ApplySettings validates and installs new settings.
// Running loops use them from their next wait on.
func (s *AutomationService) ApplySettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	for _, loop := range s.loops() {
		loop.setSettings(settings)
	}

	logger.Info("settings applied: rotation=%s clock=%s backoff=%s",
		settings.RotationInterval, settings.ClockInterval, settings.RetryBackoff)
	return nil
}

// Status returns a snapshot of every loop.
func (s *AutomationService) Status() []domain.LoopStatus {
	rotation := s.rotation.loop.snapshot()
	rotation.Detail = s.rotation.detail()

	bio := s.bio.loop.snapshot()
	bio.Detail = s.bio.detail()

	name := s.name.loop.snapshot()
	name.Detail = s.name.detail()

	return []domain.LoopStatus{rotation, bio, name}
}

// Shutdown stops every running loop without the final clock restore.
func (s *AutomationService) Shutdown(_ context.Context) error {
	var errs []error
	for _, loop := range s.loops() {
		if err := loop.stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
			errs = append(errs, fmt.Errorf("stopping %s loop: %w", loop.feature, err))
		}
	}
	return errors.Join(errs...)
}

func (s *AutomationService) loops() []*periodicLoop {
	return []*periodicLoop{s.rotation.loop, s.bio.loop, s.name.loop}
}

// recordAudit writes an event to the host's persistent log.
// Failures are logged and never fail the command.
func (s *AutomationService) recordAudit(ctx context.Context, action domain.AuditAction, detail string) {
	logger.Info("audit: %s %s", action, detail)
	if s.audit == nil {
		return
	}

	event := domain.AuditEvent{
		Action:    action,
		Detail:    detail,
		CreatedAt: s.clock.Now(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		logger.Error("audit: recording %s: %v", action, err)
		return
	}

	if keep := s.Settings().AuditRetention; keep > 0 {
		if err := s.audit.Prune(ctx, keep); err != nil {
			logger.Error("audit: pruning: %v", err)
		}
	}
}
