package driven

import (
	"time"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// LoopObserver receives lifecycle and tick notifications from the periodic loops.
// Implementations must be safe for concurrent use.
type LoopObserver interface {
	LoopStarted(feature domain.Feature)
	LoopStopped(feature domain.Feature)
	TickSucceeded(feature domain.Feature, took time.Duration)
	TickFailed(feature domain.Feature, err error)
	PhotosPurged(count int)
}
