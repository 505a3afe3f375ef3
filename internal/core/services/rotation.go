package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// uploadName is the file name used for rotated pictures.
const uploadName = "autoprofile.png"

// rotationFeature is the profile picture rotation loop.
type rotationFeature struct {
	loop    *periodicLoop
	current atomic.Pointer[rotationRun]
}

// rotationRun is the state of one start..stop cycle.
// Only the loop goroutine mutates it.
type rotationRun struct {
	base image.Image

	// deleted is set once the previous photo for the pending angle is gone,
	// so a retried tick uploads without deleting again.
	deleted bool

	mu    sync.Mutex
	state domain.RotationState
}

func (r *rotationRun) snapshot() domain.RotationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *rotationRun) commit(state domain.RotationState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	r.deleted = false
}

func (f *rotationFeature) detail() string {
	run := f.current.Load()
	if run == nil {
		return ""
	}
	state := run.snapshot()
	return fmt.Sprintf("angle=%d step=%d delete_previous=%t", state.Angle, state.Step, state.DeletePrevious)
}

// Angle returns the cumulative angle of the current or last rotation run.
func (s *AutomationService) Angle() int {
	run := s.rotation.current.Load()
	if run == nil {
		return 0
	}
	return run.snapshot().Angle
}

// StartRotation fetches and decodes the current profile picture,
// then rotates it by step degrees every rotation interval.
func (s *AutomationService) StartRotation(ctx context.Context, step int, deletePrevious bool) error {
	if s.rotation.loop.isRunning() {
		return domain.ErrAlreadyRunning
	}

	photos, err := s.client.ProfilePhotos(ctx, 1)
	if err != nil {
		return fmt.Errorf("fetching profile photos: %w", err)
	}
	if len(photos) == 0 {
		return domain.ErrNoProfilePicture
	}

	data, err := s.client.DownloadProfilePhoto(ctx)
	if err != nil {
		return fmt.Errorf("downloading profile photo: %w", err)
	}
	if len(data) == 0 {
		return domain.ErrNoProfilePicture
	}

	base, err := s.codec.Decode(data)
	if err != nil {
		if !errors.Is(err, domain.ErrImageDecode) {
			err = fmt.Errorf("%w: %w", domain.ErrImageDecode, err)
		}
		return err
	}

	run := &rotationRun{
		base:  base,
		state: domain.RotationState{Step: step, DeletePrevious: deletePrevious},
	}
	if err := s.rotation.loop.start(func(ctx, commit context.Context) error {
		return s.rotateOnce(ctx, commit, run)
	}); err != nil {
		return err
	}
	s.rotation.current.Store(run)

	s.recordAudit(ctx, domain.AuditStartRotation,
		fmt.Sprintf("step=%d delete_previous=%t", step, deletePrevious))
	return nil
}

// StopRotation stops the rotation loop and waits for it to exit.
func (s *AutomationService) StopRotation(ctx context.Context) error {
	if err := s.rotation.loop.stop(); err != nil {
		return err
	}
	s.recordAudit(ctx, domain.AuditStopRotation, s.rotation.detail())
	return nil
}

// rotateOnce uploads the base picture rotated one step further.
// The angle only advances once the upload succeeded, so a retry repeats the same angle.
// ctx is cancelled on stop; once the first mutation went through the rest of the
// pair runs on commit, which only the tick timeout ends.
func (s *AutomationService) rotateOnce(ctx, commit context.Context, run *rotationRun) error {
	next := run.snapshot()
	next.Advance()

	data, err := s.codec.Encode(s.codec.Rotate(run.base, next.Angle))
	if err != nil {
		return fmt.Errorf("%w: encoding rotated photo: %w", domain.ErrTransientMutation, err)
	}

	uploadCtx := ctx
	if next.DeletePrevious {
		if !run.deleted {
			previous, err := s.client.ProfilePhotos(ctx, 1)
			if err != nil {
				return fmt.Errorf("%w: fetching previous photo: %w", domain.ErrTransientMutation, err)
			}
			if len(previous) > 0 {
				if err := s.client.DeletePhotos(ctx, previous); err != nil {
					return fmt.Errorf("%w: deleting previous photo: %w", domain.ErrTransientMutation, err)
				}
			}
			run.deleted = true
		}
		uploadCtx = commit
	}

	file, err := s.client.UploadFile(uploadCtx, uploadName, data)
	if err != nil {
		return fmt.Errorf("%w: uploading photo: %w", domain.ErrTransientMutation, err)
	}
	if err := s.client.SetProfilePhoto(commit, file); err != nil {
		return fmt.Errorf("%w: setting profile photo: %w", domain.ErrTransientMutation, err)
	}

	run.commit(next)
	return nil
}
