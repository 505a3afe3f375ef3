// Package messages defines Bubbletea message types for the dashboard.
package messages

import (
	"time"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// RefreshTick asks the dashboard to poll loop status again.
type RefreshTick struct {
	At time.Time
}

// StatusRefreshed carries a fresh loop snapshot.
type StatusRefreshed struct {
	Statuses []domain.LoopStatus
}

// ReplyReceived carries the reply to a dispatched command line.
// Err is set when the line was not a valid command.
type ReplyReceived struct {
	Line  string
	Reply string
	Err   error
}
