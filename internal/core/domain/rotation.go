package domain

// FullTurn is the number of degrees in a full rotation.
const FullTurn = 360

// RotationState tracks profile picture rotation progress.
type RotationState struct {
	// Step is the number of degrees added on every tick.
	Step int

	// DeletePrevious removes the newest picture before each upload.
	DeletePrevious bool

	// Angle is the cumulative rotation of the base image, 0..359.
	Angle int
}

// NextAngle returns the angle after one more step, normalised into 0..359.
func NextAngle(angle, step int) int {
	next := (angle + step) % FullTurn
	if next < 0 {
		next += FullTurn
	}
	return next
}

// Advance moves the state one step forward.
func (s *RotationState) Advance() {
	s.Angle = NextAngle(s.Angle, s.Step)
}
