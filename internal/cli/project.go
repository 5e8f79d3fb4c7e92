package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/laraui-labs/laraui/internal/config"
	"github.com/laraui-labs/laraui/internal/registry"
)

const clientRetries = 2

// project is an initialized Laravel project and the registry it installs from.
type project struct {
	root    string
	file    *config.File
	install config.InstallConfig
	client  *registry.Client
}

func openProject() (*project, error) {
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	f, err := config.Load(root)
	if errors.Is(err, config.ErrNotInitialized) {
		return nil, fmt.Errorf("%w. Run '%s init' first", err, branding.CLIName())
	}
	if err != nil {
		return nil, err
	}

	cfg := f.InstallConfig(root)
	return &project{
		root:    root,
		file:    f,
		install: cfg,
		client:  newClient(cfg.RegistryBaseURL),
	}, nil
}

func newClient(baseURL string) *registry.Client {
	return registry.New(baseURL,
		registry.WithLogger(logger),
		registry.WithDiskCache(diskCache()),
		registry.WithRetries(clientRetries),
	)
}

// diskCache honors LARAUI_CACHE_DIR before the user cache home.
func diskCache() *registry.DiskCache {
	if dir := os.Getenv(branding.EnvVar("CACHE_DIR")); dir != "" {
		return registry.NewDiskCache(dir)
	}
	return registry.DefaultDiskCache()
}
