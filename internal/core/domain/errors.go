package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidArguments indicates a command received the wrong number or shape of arguments.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrMissingPlaceholder indicates a clock template does not contain the time placeholder.
	ErrMissingPlaceholder = errors.New("template is missing the time placeholder")

	// ErrNoProfilePicture indicates the account has no profile picture to rotate.
	ErrNoProfilePicture = errors.New("no profile picture")

	// ErrImageDecode indicates the profile picture could not be decoded or verified.
	ErrImageDecode = errors.New("image decode failed")

	// ErrInvalidCount indicates a negative purge count.
	ErrInvalidCount = errors.New("invalid count")

	// ErrTransientMutation indicates a profile mutation failed inside a running loop.
	// Loops retry after a backoff instead of terminating.
	ErrTransientMutation = errors.New("transient mutation failure")

	// Loop state errors.

	// ErrAlreadyRunning indicates a start was requested for a loop that is running.
	ErrAlreadyRunning = errors.New("already running")

	// ErrNotRunning indicates a stop was requested for a loop that is not running.
	ErrNotRunning = errors.New("not running")

	// ErrClientNotReady indicates a command arrived before the host delivered a client.
	ErrClientNotReady = errors.New("client not ready")

	// ErrRateLimited indicates the network client refused a call because of rate limits.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidSettings indicates settings failed validation.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrFileNotUploaded indicates a file handle does not refer to a completed upload.
	ErrFileNotUploaded = errors.New("file not uploaded")
)

// FloodWaitError is returned by a network client when the server demands a pause
// before the next request.
type FloodWaitError struct {
	Seconds int
}

func (e *FloodWaitError) Error() string {
	return fmt.Sprintf("flood wait: retry after %d seconds", e.Seconds)
}

// Unwrap makes FloodWaitError match ErrRateLimited.
func (e *FloodWaitError) Unwrap() error {
	return ErrRateLimited
}
