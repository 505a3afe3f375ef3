// Package memory provides an in-memory driven.ProfileClient.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ProfileClient = (*Client)(nil)

// Call method names recorded by Client.
const (
	CallProfilePhotos = "ProfilePhotos"
	CallDownload      = "DownloadProfilePhoto"
	CallDeletePhotos  = "DeletePhotos"
	CallUploadFile    = "UploadFile"
	CallSetPhoto      = "SetProfilePhoto"
	CallUpdateProfile = "UpdateProfile"
)

type storedPhoto struct {
	photo domain.Photo
	data  []byte
}

// Client is an in-memory account. It records every call in order
// and can be told to fail the next call of a given method.
type Client struct {
	mu        sync.RWMutex
	photos    []storedPhoto // newest first
	uploads   map[string][]byte
	about     string
	firstName string
	calls     []string
	failures  map[string][]error
	now       func() time.Time
}

// NewClient creates an empty account.
func NewClient() *Client {
	return &Client{
		uploads:  make(map[string][]byte),
		failures: make(map[string][]error),
		now:      time.Now,
	}
}

// AddPhoto puts data on top of the photo stack as if the user had set it.
func (c *Client) AddPhoto(data []byte) domain.Photo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushPhoto(data)
}

func (c *Client) pushPhoto(data []byte) domain.Photo {
	photo := domain.Photo{ID: uuid.NewString(), CreatedAt: c.now()}
	c.photos = append([]storedPhoto{{photo: photo, data: data}}, c.photos...)
	return photo
}

// FailNext makes the next call to method return err.
// Multiple calls queue up in order.
func (c *Client) FailNext(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[method] = append(c.failures[method], err)
}

// record logs the call and pops a queued failure (caller must hold lock).
func (c *Client) record(method string) error {
	c.calls = append(c.calls, method)
	queue := c.failures[method]
	if len(queue) == 0 {
		return nil
	}
	c.failures[method] = queue[1:]
	return queue[0]
}

// ProfilePhotos returns up to limit photos, newest first.
func (c *Client) ProfilePhotos(ctx context.Context, limit int) ([]domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallProfilePhotos); err != nil {
		return nil, err
	}

	n := len(c.photos)
	if limit > 0 && limit < n {
		n = limit
	}
	photos := make([]domain.Photo, 0, n)
	for _, p := range c.photos[:n] {
		photos = append(photos, p.photo)
	}
	return photos, nil
}

// DownloadProfilePhoto returns the current photo bytes, or nil when there is none.
func (c *Client) DownloadProfilePhoto(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallDownload); err != nil {
		return nil, err
	}

	if len(c.photos) == 0 {
		return nil, nil
	}
	return append([]byte(nil), c.photos[0].data...), nil
}

// DeletePhotos removes the given photos. Unknown IDs are ignored.
func (c *Client) DeletePhotos(ctx context.Context, photos []domain.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallDeletePhotos); err != nil {
		return err
	}

	remove := make(map[string]bool, len(photos))
	for _, p := range photos {
		remove[p.ID] = true
	}
	kept := make([]storedPhoto, 0, len(c.photos))
	for _, p := range c.photos {
		if !remove[p.photo.ID] {
			kept = append(kept, p)
		}
	}
	c.photos = kept
	return nil
}

// UploadFile stores data and returns a handle for SetProfilePhoto.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (domain.FileHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileHandle{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallUploadFile); err != nil {
		return domain.FileHandle{}, err
	}

	id := uuid.NewString()
	c.uploads[id] = append([]byte(nil), data...)
	return domain.FileHandle{ID: id, Name: name, Size: len(data)}, nil
}

// SetProfilePhoto makes a previously uploaded file the current photo.
func (c *Client) SetProfilePhoto(ctx context.Context, file domain.FileHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallSetPhoto); err != nil {
		return err
	}

	data, ok := c.uploads[file.ID]
	if !ok {
		return domain.ErrFileNotUploaded
	}
	delete(c.uploads, file.ID)
	c.pushPhoto(data)
	return nil
}

// UpdateProfile applies the non-nil fields.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(CallUpdateProfile); err != nil {
		return err
	}

	if update.About != nil {
		c.about = *update.About
	}
	if update.FirstName != nil {
		c.firstName = *update.FirstName
	}
	return nil
}

// About returns the current bio.
func (c *Client) About() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.about
}

// FirstName returns the current first name.
func (c *Client) FirstName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.firstName
}

// PhotoCount returns how many profile photos the account has.
func (c *Client) PhotoCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.photos)
}

// Calls returns the method names called so far, in order.
func (c *Client) Calls() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.calls...)
}
