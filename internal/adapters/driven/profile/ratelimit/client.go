// Package ratelimit wraps a driven.ProfileClient with client-side pacing.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ProfileClient = (*Client)(nil)

// DefaultFloodWait is used when the server asks for a pause without saying how long.
const DefaultFloodWait = 60 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerMinute is the sustained rate limit.
	RequestsPerMinute int
	// Burst is the maximum burst size.
	Burst int
}

// ConfigFromSettings extracts the client limits from domain settings.
func ConfigFromSettings(s domain.Settings) Config {
	return Config{RequestsPerMinute: s.RequestsPerMinute, Burst: s.RequestBurst}
}

// Client paces calls to the inner client with a token bucket.
// A domain.FloodWaitError from any call pauses every call until the wait is over.
// Cancelling ctx aborts a call still waiting; a mutation already issued runs on.
type Client struct {
	inner   driven.ProfileClient
	clock   clockwork.Clock
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewClient wraps inner. A nil clock uses the real clock.
func NewClient(inner driven.ProfileClient, cfg Config, clock clockwork.Clock) *Client {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = domain.DefaultSettings().RequestsPerMinute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &Client{
		inner:   inner,
		clock:   clock,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.Burst),
	}
}

// SetLimit changes the sustained rate and burst.
func (c *Client) SetLimit(cfg Config) {
	if cfg.RequestsPerMinute <= 0 || cfg.Burst <= 0 {
		return
	}
	c.limiter.SetLimit(rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute)))
	c.limiter.SetBurst(cfg.Burst)
}

// RetryAt returns when the current flood wait ends; zero if none is active.
func (c *Client) RetryAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retryAt
}

// wait blocks until a request can be made: first the flood wait, then the token bucket.
func (c *Client) wait(ctx context.Context) error {
	retryAt := c.RetryAt()

	if now := c.clock.Now(); now.Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.clock.After(retryAt.Sub(now)):
		}
	}

	return c.limiter.Wait(ctx)
}

// issue detaches a mutation that passed the wait from later cancellation.
// The deadline still applies, so a stuck call cannot outlive the caller's bound.
func issue(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(detached, deadline)
	}
	return context.WithCancel(detached)
}

// observe records a flood wait demanded by the server.
func (c *Client) observe(err error) error {
	var flood *domain.FloodWaitError
	if !errors.As(err, &flood) {
		return err
	}

	pause := time.Duration(flood.Seconds) * time.Second
	if pause <= 0 {
		pause = DefaultFloodWait
	}

	c.mu.Lock()
	c.retryAt = c.clock.Now().Add(pause)
	c.mu.Unlock()

	logger.Warn("profile client: flood wait, pausing calls for %s", pause)
	return err
}

// ProfilePhotos implements driven.ProfileClient.
func (c *Client) ProfilePhotos(ctx context.Context, limit int) ([]domain.Photo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	photos, err := c.inner.ProfilePhotos(ctx, limit)
	return photos, c.observe(err)
}

// DownloadProfilePhoto implements driven.ProfileClient.
func (c *Client) DownloadProfilePhoto(ctx context.Context) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	data, err := c.inner.DownloadProfilePhoto(ctx)
	return data, c.observe(err)
}

// DeletePhotos implements driven.ProfileClient.
func (c *Client) DeletePhotos(ctx context.Context, photos []domain.Photo) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	ctx, cancel := issue(ctx)
	defer cancel()
	return c.observe(c.inner.DeletePhotos(ctx, photos))
}

// UploadFile implements driven.ProfileClient.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (domain.FileHandle, error) {
	if err := c.wait(ctx); err != nil {
		return domain.FileHandle{}, err
	}
	ctx, cancel := issue(ctx)
	defer cancel()
	file, err := c.inner.UploadFile(ctx, name, data)
	return file, c.observe(err)
}

// SetProfilePhoto implements driven.ProfileClient.
func (c *Client) SetProfilePhoto(ctx context.Context, file domain.FileHandle) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	ctx, cancel := issue(ctx)
	defer cancel()
	return c.observe(c.inner.SetProfilePhoto(ctx, file))
}

// UpdateProfile implements driven.ProfileClient.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	ctx, cancel := issue(ctx)
	defer cancel()
	return c.observe(c.inner.UpdateProfile(ctx, update))
}
