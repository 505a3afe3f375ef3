package domain

import "time"

// AuditAction names an event recorded in the host's persistent log.
type AuditAction string

// Audit actions.
const (
	AuditStartRotation AuditAction = "start_autopfp"
	AuditStopRotation  AuditAction = "stop_autopfp"
	AuditStartBio      AuditAction = "start_autobio"
	AuditStopBio       AuditAction = "stop_autobio"
	AuditStartName     AuditAction = "start_autoname"
	AuditStopName      AuditAction = "stop_autoname"
	AuditPurge         AuditAction = "delpfp"
)

// AuditEvent is a single persistent log entry.
type AuditEvent struct {
	ID        string
	Action    AuditAction
	Detail    string
	CreatedAt time.Time
}
