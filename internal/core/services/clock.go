package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// clockFeature renders the current time into one profile field.
// The bio and name clocks are two instances of it.
type clockFeature struct {
	loop        *periodicLoop
	startAction domain.AuditAction
	stopAction  domain.AuditAction
	update      func(text string) domain.ProfileUpdate

	mu    sync.Mutex
	state domain.ClockState
}

func (f *clockFeature) currentState() domain.ClockState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *clockFeature) setState(state domain.ClockState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

func (f *clockFeature) detail() string {
	state := f.currentState()
	if state.Template == "" {
		return ""
	}
	return fmt.Sprintf("template=%q", state.Template)
}

// StartBioClock renders template into the bio every clock interval.
func (s *AutomationService) StartBioClock(ctx context.Context, template string) error {
	return s.startClock(ctx, s.bio, template)
}

// StopBioClock stops the bio clock and blanks the time in the bio.
func (s *AutomationService) StopBioClock(ctx context.Context) error {
	return s.stopClock(ctx, s.bio)
}

// StartNameClock renders template into the first name every clock interval.
func (s *AutomationService) StartNameClock(ctx context.Context, template string) error {
	return s.startClock(ctx, s.name, template)
}

// StopNameClock stops the name clock and blanks the time in the first name.
func (s *AutomationService) StopNameClock(ctx context.Context) error {
	return s.stopClock(ctx, s.name)
}

func (s *AutomationService) startClock(ctx context.Context, f *clockFeature, template string) error {
	if !domain.HasTimePlaceholder(template) {
		return domain.ErrMissingPlaceholder
	}

	state := domain.ClockState{Template: template}
	if err := f.loop.start(func(ctx, _ context.Context) error {
		return s.renderClock(ctx, f, state)
	}); err != nil {
		return err
	}
	f.setState(state)

	s.recordAudit(ctx, f.startAction, template)
	return nil
}

// stopClock stops the loop, then pushes the template with a blank time
// so the last rendered time is not left frozen on the profile.
func (s *AutomationService) stopClock(ctx context.Context, f *clockFeature) error {
	if err := f.loop.stop(); err != nil {
		return err
	}

	state := f.currentState()
	s.recordAudit(ctx, f.stopAction, state.Template)

	if err := s.client.UpdateProfile(ctx, f.update(state.Blank())); err != nil {
		return fmt.Errorf("%w: restoring %s: %w", domain.ErrTransientMutation, f.loop.feature, err)
	}
	return nil
}

func (s *AutomationService) renderClock(ctx context.Context, f *clockFeature, state domain.ClockState) error {
	settings := s.Settings()
	now := s.clock.Now().In(settings.Location).Format(settings.TimeFormat)

	if err := s.client.UpdateProfile(ctx, f.update(state.Render(now))); err != nil {
		return fmt.Errorf("%w: updating %s: %w", domain.ErrTransientMutation, f.loop.feature, err)
	}
	return nil
}
