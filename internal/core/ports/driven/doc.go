// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the module to function:
//
//   - ProfileClient: The authenticated account the loops mutate
//   - ImageCodec: Decodes, rotates and encodes profile pictures
//
// # Optional Interfaces
//
// These can be nil - the module degrades gracefully:
//
//   - AuditLog: The host's persistent log. Without it, events are only logged.
//   - LoopObserver: Metrics hooks. Without it, nothing is recorded.
//
// ConfigStore is used by the configuration adapters and the CLI to read
// settings; core services receive already-validated domain.Settings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
