package mcp

import (
	"context"

	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
)

// Dispatcher runs a chat command and returns the reply the user would see.
// plugin.Module implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args []string) (string, error)
}

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Commands dispatches tool calls so replies match the chat surface.
	Commands Dispatcher

	// Automation backs the status resource.
	Automation driving.ProfileAutomation
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Commands == nil {
		return ErrMissingDispatcher
	}
	if p.Automation == nil {
		return ErrMissingAutomation
	}
	return nil
}
