// Package filesystem provides a driven.ProfileClient backed by a local directory.
//
// Layout:
//
//	<dir>/profile.toml     bio, first name and photo order
//	<dir>/photos/<id>      profile photo bytes
//	<dir>/uploads/<id>     uploaded files not yet set as photo
//
// It lets the module run end to end without a network account.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ProfileClient = (*Client)(nil)

const (
	profileFile = "profile.toml"
	photosDir   = "photos"
	uploadsDir  = "uploads"
)

// profileDoc is the on-disk form of profile.toml.
type profileDoc struct {
	About     string     `toml:"about"`
	FirstName string     `toml:"first_name"`
	Photos    []photoDoc `toml:"photos"`
}

type photoDoc struct {
	ID        string    `toml:"id"`
	CreatedAt time.Time `toml:"created_at"`
}

// Client is a sandbox account stored in a directory.
type Client struct {
	mu  sync.Mutex
	dir string
}

// NewClient opens or creates an account directory.
func NewClient(dir string) (*Client, error) {
	for _, sub := range []string{photosDir, uploadsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0700); err != nil {
			return nil, fmt.Errorf("creating account directory: %w", err)
		}
	}

	c := &Client{dir: dir}
	if _, err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the account directory.
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) load() (profileDoc, error) {
	var doc profileDoc

	data, err := os.ReadFile(filepath.Join(c.dir, profileFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("reading %s: %w", profileFile, err)
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing %s: %w", profileFile, err)
	}
	return doc, nil
}

// save writes profile.toml via a temp file so readers never see a partial document.
func (c *Client) save(doc profileDoc) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", profileFile, err)
	}

	path := filepath.Join(c.dir, profileFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", profileFile, err)
	}
	return os.Rename(tmp, path)
}

// ProfilePhotos returns up to limit photos, newest first.
func (c *Client) ProfilePhotos(ctx context.Context, limit int) ([]domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return nil, err
	}

	entries := doc.Photos
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	photos := make([]domain.Photo, 0, len(entries))
	for _, p := range entries {
		photos = append(photos, domain.Photo{ID: p.ID, CreatedAt: p.CreatedAt})
	}
	return photos, nil
}

// DownloadProfilePhoto returns the newest photo's bytes, or nil when there is none.
func (c *Client) DownloadProfilePhoto(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return nil, err
	}
	if len(doc.Photos) == 0 {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(c.dir, photosDir, doc.Photos[0].ID))
	if err != nil {
		return nil, fmt.Errorf("reading photo %s: %w", doc.Photos[0].ID, err)
	}
	return data, nil
}

// DeletePhotos removes the given photos. Unknown IDs are ignored.
func (c *Client) DeletePhotos(ctx context.Context, photos []domain.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}

	remove := make(map[string]bool, len(photos))
	for _, p := range photos {
		remove[p.ID] = true
	}

	// A photo whose file could not be removed stays listed; the rest are dropped.
	var errs []error
	kept := doc.Photos[:0]
	for _, p := range doc.Photos {
		if !remove[p.ID] {
			kept = append(kept, p)
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, photosDir, p.ID)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing photo %s: %w", p.ID, err))
			kept = append(kept, p)
		}
	}
	doc.Photos = kept

	if err := c.save(doc); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// UploadFile stores data under uploads/ and returns its handle.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (domain.FileHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileHandle{}, err
	}

	id := uuid.NewString()
	if err := os.WriteFile(filepath.Join(c.dir, uploadsDir, id), data, 0600); err != nil {
		return domain.FileHandle{}, fmt.Errorf("storing upload: %w", err)
	}
	return domain.FileHandle{ID: id, Name: name, Size: len(data)}, nil
}

// SetProfilePhoto moves an upload into photos/ and puts it on top.
func (c *Client) SetProfilePhoto(ctx context.Context, file domain.FileHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := uuid.Parse(file.ID); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrFileNotUploaded, file.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}

	src := filepath.Join(c.dir, uploadsDir, file.ID)
	if err := os.Rename(src, filepath.Join(c.dir, photosDir, file.ID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrFileNotUploaded, file.ID)
		}
		return fmt.Errorf("setting photo: %w", err)
	}

	doc.Photos = append([]photoDoc{{ID: file.ID, CreatedAt: time.Now().UTC().Truncate(time.Second)}}, doc.Photos...)
	return c.save(doc)
}

// UpdateProfile applies the non-nil fields to profile.toml.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}
	if update.About != nil {
		doc.About = *update.About
	}
	if update.FirstName != nil {
		doc.FirstName = *update.FirstName
	}
	return c.save(doc)
}

// Profile returns the stored bio and first name.
func (c *Client) Profile() (about, firstName string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return "", "", err
	}
	return doc.About, doc.FirstName, nil
}

// ImportPhoto copies an image file into the account as the current photo.
func (c *Client) ImportPhoto(ctx context.Context, path string) (domain.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := c.UploadFile(ctx, filepath.Base(path), data)
	if err != nil {
		return domain.Photo{}, err
	}
	if err := c.SetProfilePhoto(ctx, file); err != nil {
		return domain.Photo{}, err
	}

	photos, err := c.ProfilePhotos(ctx, 1)
	if err != nil {
		return domain.Photo{}, err
	}
	return photos[0], nil
}
