// Package profile groups the ProfileClient implementations shipped with the module.
//
// Adapters:
//   - memory: in-process account, used by tests and dry runs
//   - filesystem: sandbox account persisted in a directory
//   - ratelimit: decorator that paces calls and honours flood waits
//
// The real network client is supplied by the host application.
package profile
