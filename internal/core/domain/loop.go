package domain

import "time"

// Feature identifies one of the periodic profile loops.
type Feature string

const (
	// FeatureRotation rotates the profile picture.
	FeatureRotation Feature = "rotation"
	// FeatureBio renders the current time into the bio.
	FeatureBio Feature = "bio"
	// FeatureName renders the current time into the first name.
	FeatureName Feature = "name"
)

// AllFeatures lists the loops in display order.
func AllFeatures() []Feature {
	return []Feature{FeatureRotation, FeatureBio, FeatureName}
}

// String returns the feature identifier.
func (f Feature) String() string {
	return string(f)
}

// LoopState is the lifecycle state of a periodic loop.
type LoopState int

const (
	// LoopStopped means no loop goroutine is alive.
	LoopStopped LoopState = iota
	// LoopRunning means exactly one loop goroutine is alive.
	LoopRunning
)

// String returns a human-readable state.
func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "running"
	default:
		return "stopped"
	}
}

// LoopStatus is a point-in-time snapshot of a loop.
type LoopStatus struct {
	// Feature identifies the loop.
	Feature Feature

	// State is the current lifecycle state.
	State LoopState

	// StartedAt is when the loop was last started.
	StartedAt time.Time

	// LastTick is when the last mutation attempt finished.
	LastTick time.Time

	// Ticks counts successful mutations since the last start.
	Ticks int

	// Failures counts failed mutations since the last start.
	Failures int

	// LastError holds the most recent mutation error message, if any.
	LastError string

	// Detail describes the loop's parameters, e.g. the current angle or template.
	Detail string
}

// Running reports whether the loop is running.
func (s LoopStatus) Running() bool {
	return s.State == LoopRunning
}
