package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/autoprofile/internal/adapters/driven/config/file"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/imaging"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/metrics"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/profile/filesystem"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/profile/memory"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/profile/ratelimit"
	memstore "github.com/custodia-labs/autoprofile/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/autoprofile/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/autoprofile/internal/adapters/driving/plugin"
	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driving"
	"github.com/custodia-labs/autoprofile/internal/core/services"
)

// ErrImportUnsupported is returned when the active backend cannot import photos.
var ErrImportUnsupported = errors.New("photo import requires the filesystem backend")

// PhotoImporter adds a local image file to the account as its current photo.
type PhotoImporter interface {
	ImportPhoto(ctx context.Context, path string) (domain.Photo, error)
}

// Runtime holds the wired components the commands drive.
type Runtime struct {
	// Config is the file store watched for live reloads. Nil disables the watcher.
	Config *file.ConfigStore

	Automation driving.ProfileAutomation
	Module     *plugin.Module
	Audit      driven.AuditLog
	Registry   *prom.Registry

	// Photos is nil when the backend cannot import local files.
	Photos PhotoImporter

	limiter *ratelimit.Client
	closers []func() error
}

// newRuntime is replaced in tests.
var newRuntime = buildRuntime

// buildRuntime wires the adapters described by the configuration in dir.
func buildRuntime(dir string) (*Runtime, error) {
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settings, err := file.LoadSettings(store)
	if err != nil {
		return nil, err
	}
	profileCfg, err := file.LoadProfileConfig(store, dir)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: store}

	var inner driven.ProfileClient
	switch profileCfg.Backend {
	case file.BackendMemory:
		inner = memory.NewClient()
	default:
		fsClient, err := filesystem.NewClient(profileCfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening account %s: %w", profileCfg.Dir, err)
		}
		inner = fsClient
		rt.Photos = fsClient
	}

	// The memory backend keeps its audit trail in memory too, so nothing is written to disk.
	if profileCfg.Backend == file.BackendMemory {
		rt.Audit = memstore.NewAuditLog()
	} else {
		db, err := sqlite.NewStore(filepath.Join(dir, "data"))
		if err != nil {
			return nil, fmt.Errorf("opening audit log: %w", err)
		}
		rt.closers = append(rt.closers, db.Close)
		rt.Audit = db.AuditLog()
	}

	clock := clockwork.NewRealClock()
	rt.limiter = ratelimit.NewClient(inner, ratelimit.ConfigFromSettings(settings), clock)

	rt.Registry = prom.NewRegistry()
	recorder := metrics.NewRecorder(rt.Registry)

	rt.Automation = services.NewAutomationService(
		rt.limiter, imaging.NewCodec(), rt.Audit, recorder, clock, settings)

	rt.Module = plugin.NewModule()
	rt.Module.ClientReady(rt.Automation)

	return rt, nil
}

// ApplySettings pushes reloaded settings into the automation and the rate limiter.
func (r *Runtime) ApplySettings(settings domain.Settings) error {
	if err := r.Automation.ApplySettings(settings); err != nil {
		return err
	}
	if r.limiter != nil {
		r.limiter.SetLimit(ratelimit.ConfigFromSettings(settings))
	}
	return nil
}

// Close stops every loop and releases the stores.
func (r *Runtime) Close() error {
	var errs []error
	if r.Automation != nil {
		errs = append(errs, r.Automation.Shutdown(context.Background()))
	}
	for _, closeFn := range r.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}
