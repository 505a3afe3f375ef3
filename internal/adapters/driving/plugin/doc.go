// Package plugin is the command surface the host dispatches chat commands to.
//
// The host delivers the authenticated automation service through ClientReady,
// then calls Dispatch for each command with its positional arguments.
// Every command produces exactly one user-facing reply.
package plugin
