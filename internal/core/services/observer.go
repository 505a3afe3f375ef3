package services

import (
	"time"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure noopObserver implements the interface.
var _ driven.LoopObserver = noopObserver{}

// noopObserver is used when no metrics recorder is configured.
type noopObserver struct{}

func (noopObserver) LoopStarted(domain.Feature)                  {}
func (noopObserver) LoopStopped(domain.Feature)                  {}
func (noopObserver) TickSucceeded(domain.Feature, time.Duration) {}
func (noopObserver) TickFailed(domain.Feature, error)            {}
func (noopObserver) PhotosPurged(int)                            {}
