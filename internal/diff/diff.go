// Package diff reports drift between installed components and their
// registry originals. Both copies are normalized before comparison, so only
// substantive edits count; differences a rewrite introduces never do.
package diff

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/laraui-labs/laraui/internal/config"
	"github.com/laraui-labs/laraui/internal/install"
	"github.com/laraui-labs/laraui/internal/manifest"
)

// State is the comparison result for one file.
type State int

const (
	// StateSame means local and remote match after normalization.
	StateSame State = iota
	// StateDiffers means the normalized contents differ.
	StateDiffers
	// StateMissing means there is no local copy; the file is not compared.
	StateMissing
	// StateUnknown means the comparison could not be made.
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StateSame:
		return "same"
	case StateDiffers:
		return "differs"
	case StateMissing:
		return "missing"
	case StateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FileReport is the comparison of one declared file.
type FileReport struct {
	Rel      string
	Path     string
	Template bool
	State    State
	Err      error
}

// Report is the per-file drift of one component.
type Report struct {
	Component string
	Files     []FileReport
}

// Diffs returns the number of files whose contents differ.
func (r Report) Diffs() int {
	n := 0
	for _, f := range r.Files {
		if f.State == StateDiffers {
			n++
		}
	}
	return n
}

// Engine compares local component files against the registry.
type Engine struct {
	fetcher install.FileFetcher
	fs      afero.Fs
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger sets the logger for skipped-file diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine that fetches remote originals through fetcher.
func New(fetcher install.FileFetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		fs:      afero.NewOsFs(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckComponent returns how many of the component's local files differ
// from the registry. Unknown components and files that cannot be compared
// contribute nothing.
func (e *Engine) CheckComponent(ctx context.Context, name string, m *manifest.Manifest, cfg config.InstallConfig) int {
	return e.Check(ctx, name, m, cfg).Diffs()
}

// Check compares every declared file of a component. Per-file failures are
// recorded as StateUnknown and never abort the remaining files.
func (e *Engine) Check(ctx context.Context, name string, m *manifest.Manifest, cfg config.InstallConfig) Report {
	report := Report{Component: name}

	spec, ok := m.Component(name)
	if !ok {
		return report
	}
	files, err := install.Files(spec, cfg)
	if err != nil {
		e.log.Warn().Err(err).Str("component", name).Msg("skipping component with unsafe file paths")
		return report
	}

	for _, f := range files {
		report.Files = append(report.Files, e.checkFile(ctx, f, cfg))
	}
	return report
}

func (e *Engine) checkFile(ctx context.Context, f install.File, cfg config.InstallConfig) FileReport {
	r := FileReport{Rel: f.Rel, Path: f.Dest, Template: f.Template}

	local, err := afero.ReadFile(e.fs, f.Dest)
	if err != nil {
		if os.IsNotExist(err) {
			r.State = StateMissing
			return r
		}
		e.log.Debug().Err(err).Str("path", f.Dest).Msg("cannot read local file")
		r.State, r.Err = StateUnknown, err
		return r
	}

	remote, err := e.fetcher.FetchFile(ctx, f.Source)
	if err != nil {
		e.log.Debug().Err(err).Str("path", f.Source).Msg("cannot fetch remote file")
		r.State, r.Err = StateUnknown, err
		return r
	}

	if f.Normalize(string(local)) == f.Normalize(f.Rewrite(remote, cfg)) {
		r.State = StateSame
	} else {
		r.State = StateDiffers
	}
	return r
}
