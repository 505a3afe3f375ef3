// Package tui provides the interactive terminal dashboard for autoprofile.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
)

// LineDispatcher answers a typed command line with the chat reply.
// plugin.Module implements it.
type LineDispatcher interface {
	DispatchLine(ctx context.Context, line string) (string, error)
}

// Ports aggregates the driving ports the dashboard needs.
type Ports struct {
	// Commands runs typed command lines.
	Commands LineDispatcher

	// Automation is polled for loop status.
	Automation driving.ProfileAutomation
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Commands == nil {
		return ErrMissingCommands
	}
	if p.Automation == nil {
		return ErrMissingAutomation
	}
	return nil
}
