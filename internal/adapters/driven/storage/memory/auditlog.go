package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// AuditLog is an in-memory implementation of driven.AuditLog.
type AuditLog struct {
	mu     sync.RWMutex
	events []domain.AuditEvent // oldest first
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record appends an event. A missing ID is generated.
func (l *AuditLog) Record(_ context.Context, event domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Recent returns up to limit events, most recent first. A limit <= 0 returns all.
func (l *AuditLog) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.events)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.AuditEvent, 0, n)
	for i := len(l.events) - 1; i >= len(l.events)-n; i-- {
		result = append(result, l.events[i])
	}
	return result, nil
}

// Prune keeps only the most recent keep events.
func (l *AuditLog) Prune(_ context.Context, keep int) error {
	if keep < 0 {
		return fmt.Errorf("%w: keep must not be negative", domain.ErrInvalidCount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) > keep {
		l.events = append([]domain.AuditEvent(nil), l.events[len(l.events)-keep:]...)
	}
	return nil
}
