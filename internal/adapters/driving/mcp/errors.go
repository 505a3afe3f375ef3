// Package mcp provides an MCP (Model Context Protocol) server adapter for autoprofile.
// It lets AI assistants start, stop and inspect the profile loops with the same
// commands a user types in chat.
package mcp

import "errors"

// ErrMissingDispatcher is returned when no command dispatcher is provided.
var ErrMissingDispatcher = errors.New("mcp: command dispatcher is required")

// ErrMissingAutomation is returned when the automation service is not provided.
var ErrMissingAutomation = errors.New("mcp: automation service is required")
