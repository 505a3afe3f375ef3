package driven

import (
	"context"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

// ProfileClient is the authenticated network client for the user's own account.
type ProfileClient interface {
	// ProfilePhotos returns up to limit profile photos, newest first.
	// A limit of domain.PurgeUnlimited returns every photo.
	ProfilePhotos(ctx context.Context, limit int) ([]domain.Photo, error)

	// DownloadProfilePhoto returns the bytes of the current profile photo.
	// Returns an empty slice and no error if the account has no photo.
	DownloadProfilePhoto(ctx context.Context) ([]byte, error)

	// DeletePhotos removes the given photos in one request.
	DeletePhotos(ctx context.Context, photos []domain.Photo) error

	// UploadFile uploads raw bytes and returns a handle usable by SetProfilePhoto.
	UploadFile(ctx context.Context, name string, data []byte) (domain.FileHandle, error)

	// SetProfilePhoto makes an uploaded file the current profile photo.
	SetProfilePhoto(ctx context.Context, file domain.FileHandle) error

	// UpdateProfile changes the non-nil fields of the update.
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error
}
