// Package services implements the driving port interfaces.
// Services contain the periodic profile loops and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Time is injected through
// clockwork so loop intervals can be driven by a fake clock in tests.
package services
