// Package domain defines the core entities of the automatic profile module.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Feature / LoopState / LoopStatus: the periodic loops and their state
//   - RotationState: profile picture rotation progress
//   - ClockState: a bio or name template carrying a time placeholder
//   - Photo / FileHandle / ProfileUpdate: what the network client exchanges
//   - AuditEvent: an entry for the host's persistent log
//   - Settings: intervals, time format and client limits
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
