package install

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/laraui-labs/laraui/internal/config"
	"github.com/laraui-labs/laraui/internal/manifest"
)

// Installed returns, in lexical order, the manifest components whose first
// code file exists under cfg.CodeDestDir. Components without code files are
// never reported as installed.
func Installed(fs afero.Fs, m *manifest.Manifest, cfg config.InstallConfig) []string {
	var names []string
	for _, name := range m.Names() {
		if IsInstalled(fs, m.Components[name], cfg) {
			names = append(names, name)
		}
	}
	return names
}

// IsInstalled reports whether the first code file of spec exists locally.
func IsInstalled(fs afero.Fs, spec manifest.ComponentSpec, cfg config.InstallConfig) bool {
	if len(spec.Files.Code) == 0 {
		return false
	}
	ok, err := afero.Exists(fs, filepath.Join(cfg.CodeDestDir, filepath.FromSlash(spec.Files.Code[0])))
	return err == nil && ok
}
