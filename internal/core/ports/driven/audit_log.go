package driven

import (
	"context"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// AuditLog is the host's persistent log for user-visible actions.
type AuditLog interface {
	// Record appends an event.
	Record(ctx context.Context, event domain.AuditEvent) error

	// Recent returns up to limit events, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error)

	// Prune removes everything but the most recent keep events.
	Prune(ctx context.Context, keep int) error
}
