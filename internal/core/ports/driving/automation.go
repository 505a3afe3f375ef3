package driving

import (
	"context"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// ProfileAutomation starts and stops the periodic profile loops.
type ProfileAutomation interface {
	// StartRotation begins rotating the current profile picture by step degrees per tick.
	// Returns domain.ErrAlreadyRunning if rotation is active.
	StartRotation(ctx context.Context, step int, deletePrevious bool) error

	// StopRotation stops rotation and waits for the loop to exit.
	// Returns domain.ErrNotRunning if rotation is not active.
	StopRotation(ctx context.Context) error

	// StartBioClock begins rendering the current time into the bio.
	StartBioClock(ctx context.Context, template string) error

	// StopBioClock stops the bio clock and blanks the time in the bio.
	StopBioClock(ctx context.Context) error

	// StartNameClock begins rendering the current time into the first name.
	StartNameClock(ctx context.Context, template string) error

	// StopNameClock stops the name clock and blanks the time in the name.
	StopNameClock(ctx context.Context) error

	// PurgePhotos deletes up to count profile photos (0 = all) and returns how many were removed.
	PurgePhotos(ctx context.Context, count int) (int, error)

	// Status returns a snapshot of every loop.
	Status() []domain.LoopStatus

	// ApplySettings replaces loop settings; running loops pick them up on their next wait.
	ApplySettings(settings domain.Settings) error

	// Shutdown stops every running loop.
	Shutdown(ctx context.Context) error
}
