package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// PurgePhotos deletes up to count profile photos in one batch.
// A count of zero removes every photo; a negative count is rejected
// before any network call.
func (s *AutomationService) PurgePhotos(ctx context.Context, count int) (int, error) {
	if count < 0 {
		return 0, domain.ErrInvalidCount
	}

	photos, err := s.client.ProfilePhotos(ctx, count)
	if err != nil {
		return 0, fmt.Errorf("fetching profile photos: %w", err)
	}

	if len(photos) > 0 {
		if err := s.client.DeletePhotos(ctx, photos); err != nil {
			return 0, fmt.Errorf("deleting profile photos: %w", err)
		}
	}

	s.observer.PhotosPurged(len(photos))
	s.recordAudit(ctx, domain.AuditPurge, fmt.Sprintf("removed=%d", len(photos)))
	return len(photos), nil
}
