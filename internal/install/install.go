package install

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/laraui-labs/laraui/internal/config"
	"github.com/laraui-labs/laraui/internal/manifest"
)

// FileFetcher returns the text of a registry file addressed relative to the
// registry base URL. *registry.Client satisfies it.
type FileFetcher interface {
	FetchFile(ctx context.Context, relPath string) (string, error)
}

// ObserverFunc is called once per component as soon as its outcome is known.
type ObserverFunc func(name string, outcome Outcome)

// Installer writes registry components into a project.
type Installer struct {
	fetcher  FileFetcher
	fs       afero.Fs
	log      zerolog.Logger
	observer ObserverFunc
}

// Option configures an Installer.
type Option func(*Installer)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(in *Installer) { in.fs = fs }
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(in *Installer) { in.log = log }
}

// WithObserver registers a callback for each completed component.
func WithObserver(fn ObserverFunc) Option {
	return func(in *Installer) { in.observer = fn }
}

// New creates an Installer that fetches files through fetcher.
func New(fetcher FileFetcher, opts ...Option) *Installer {
	in := &Installer{
		fetcher: fetcher,
		fs:      afero.NewOsFs(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Install installs each named component in order and returns the outcome of
// every one. Existing files are kept unless force is set. Callers normally
// pass names already expanded by registry.Resolve.
func (in *Installer) Install(ctx context.Context, names []string, m *manifest.Manifest, cfg config.InstallConfig, force bool) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(names))
	for _, name := range names {
		if _, done := outcomes[name]; done {
			continue
		}
		o := in.installComponent(ctx, name, m, cfg, force)
		outcomes[name] = o

		ev := in.log.Debug()
		if o.Err != nil {
			ev = in.log.Warn().Err(o.Err)
		}
		ev.Str("component", name).
			Stringer("status", o.Status).
			Int("written", o.Written).
			Int("existing", o.Existing).
			Msg("component processed")

		if in.observer != nil {
			in.observer(name, o)
		}
	}
	return outcomes
}

func (in *Installer) installComponent(ctx context.Context, name string, m *manifest.Manifest, cfg config.InstallConfig, force bool) Outcome {
	spec, ok := m.Component(name)
	if !ok {
		return Outcome{Status: StatusError, Err: ErrComponentNotFound}
	}

	files, err := Files(spec, cfg)
	if err != nil {
		return Outcome{Status: StatusError, Err: err}
	}

	var o Outcome
	for _, f := range files {
		written, err := in.installFile(ctx, f, cfg, force)
		if err != nil {
			o.Status, o.Err = StatusError, err
			return o
		}
		if written {
			o.Written++
		} else {
			o.Existing++
		}
	}

	if o.Written > 0 {
		o.Status = StatusInstalled
	} else {
		o.Status = StatusSkipped
	}
	return o
}

// installFile reports whether f was written; false means it already existed.
func (in *Installer) installFile(ctx context.Context, f File, cfg config.InstallConfig, force bool) (bool, error) {
	exists, err := afero.Exists(in.fs, f.Dest)
	if err != nil {
		return false, &WriteError{Path: f.Dest, Cause: err}
	}
	if exists && !force {
		in.log.Debug().Str("path", f.Dest).Msg("keeping existing file")
		return false, nil
	}

	content, err := in.fetcher.FetchFile(ctx, f.Source)
	if err != nil {
		return false, err
	}

	if err := in.fs.MkdirAll(filepath.Dir(f.Dest), 0755); err != nil {
		return false, &WriteError{Path: f.Dest, Cause: err}
	}
	if err := afero.WriteFile(in.fs, f.Dest, []byte(f.Rewrite(content, cfg)), 0644); err != nil {
		return false, &WriteError{Path: f.Dest, Cause: err}
	}
	in.log.Debug().Str("path", f.Dest).Msg("wrote file")
	return true, nil
}
