package tui

import "errors"

var (
	// ErrMissingCommands is returned when no command dispatcher is configured.
	ErrMissingCommands = errors.New("tui: command dispatcher is required")

	// ErrMissingAutomation is returned when no automation service is configured.
	ErrMissingAutomation = errors.New("tui: automation service is required")
)
