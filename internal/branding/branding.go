// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Forks edit the YAML instead of the Go sources.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	ConfigFile      string `yaml:"config_file"`
	EnvPrefix       string `yaml:"env_prefix"`
	CacheDir        string `yaml:"cache_dir"`
	DefaultRegistry string `yaml:"default_registry"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "laraui",
			DisplayName:     "LaraUI",
			Description:     "Copy-in UI components for Laravel projects",
			ConfigFile:      "lara-ui.json",
			EnvPrefix:       "LARAUI",
			CacheDir:        "laraui",
			DefaultRegistry: "https://raw.githubusercontent.com/amsiam/lara-ui/main",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "laraui").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "LaraUI").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigFile returns the project-level config file name (e.g., "lara-ui.json").
func ConfigFile() string { load(); return defaults.ConfigFile }

// EnvPrefix returns the environment variable prefix (e.g., "LARAUI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// CacheDir returns the directory name used under the user cache home.
func CacheDir() string { load(); return defaults.CacheDir }

// DefaultRegistry returns the registry base URL used when none is configured.
func DefaultRegistry() string { load(); return defaults.DefaultRegistry }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("REGISTRY") → "LARAUI_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
