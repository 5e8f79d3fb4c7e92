package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(Path(root), []byte(content), 0644))
}

func TestLoad_NotInitialized(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestLoad_AppliesDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"prefix": "acme"}`)

	f, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "acme", f.Prefix)
	assert.Equal(t, DefaultComponentsPath, f.Aliases.Components)
	assert.Equal(t, DefaultUtilsPath, f.Aliases.Utils)
	assert.Equal(t, DefaultCSSPath, f.Tailwind.CSS)
	assert.NotEmpty(t, f.Registry)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"prefix": "ui", "typescript": false}`)

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typescript")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prefix with colon", `{"prefix": "ui::"}`},
		{"uppercase prefix", `{"prefix": "UI"}`},
		{"registry without scheme", `{"registry": "example.com/registry"}`},
		{"empty components alias", `{"aliases": {"components": ""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)
			_, err := Load(root)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"prefix": "ui"}`)
	t.Setenv("LARAUI_REGISTRY", "https://registry.example.com/ui/")

	f, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "https://registry.example.com/ui/", f.Registry)
	assert.Equal(t, "https://registry.example.com/ui", f.InstallConfig(root).RegistryBaseURL)
}

func TestSaveThenLoad(t *testing.T) {
	root := t.TempDir()
	f := Default()
	f.Prefix = "kit"
	f.Aliases.Components = "resources/views/components/kit"

	require.NoError(t, Save(root, f))
	assert.True(t, Exists(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestSave_RejectsInvalid(t *testing.T) {
	root := t.TempDir()
	f := Default()
	f.Prefix = ""

	require.Error(t, Save(root, f))
	assert.False(t, Exists(root))
}

func TestGetSet(t *testing.T) {
	f := Default()
	for _, key := range Keys {
		require.NoError(t, f.Set(key, "value-"+key))
		got, err := f.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "value-"+key, got)
	}

	_, err := f.Get("aliases.css")
	assert.Error(t, err)
	assert.Error(t, f.Set("typescript", "true"))
}

func TestInstallConfig(t *testing.T) {
	root := t.TempDir()
	f := Default()
	f.Registry = "https://registry.example.com/"

	cfg := f.InstallConfig(root)
	assert.Equal(t, filepath.Join(root, "app", "View", "Components", "LaraUi"), cfg.CodeDestDir)
	assert.Equal(t, filepath.Join(root, "resources", "views", "components", "ui"), cfg.TemplateDestDir)
	assert.Equal(t, filepath.Join(root, "resources", "views"), cfg.TemplateRoot)
	assert.Equal(t, "ui", cfg.Prefix)
	assert.Equal(t, "https://registry.example.com", cfg.RegistryBaseURL)
	assert.Equal(t, `App\View\Components\LaraUi`, cfg.CodeNamespaceRoot)

	f.Namespace = `Acme\Ui`
	assert.Equal(t, `Acme\Ui`, f.InstallConfig(root).CodeNamespaceRoot)
}

func TestInstallConfig_WithDestination(t *testing.T) {
	root := t.TempDir()
	cfg := Default().InstallConfig(root).WithDestination(root, "packages/ui")

	assert.Equal(t, filepath.Join(root, "packages", "ui", "Components"), cfg.CodeDestDir)
	assert.Equal(t, filepath.Join(root, "packages", "ui", "views"), cfg.TemplateDestDir)
	assert.Equal(t, filepath.Join(root, "packages", "ui"), cfg.TemplateRoot)
	assert.Equal(t, "views", cfg.ViewPath())
}

func TestInstallConfig_ViewPath(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		components string
		want       string
	}{
		{"resources/views/components/ui", "components.ui"},
		{"resources/views/kit", "kit"},
		{"resources/views", ""},
		{"vendor/ui/blade", "blade"},
	}

	for _, tt := range tests {
		t.Run(tt.components, func(t *testing.T) {
			f := Default()
			f.Aliases.Components = tt.components
			assert.Equal(t, tt.want, f.InstallConfig(root).ViewPath())
		})
	}
}

func TestNamespaceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"app/View/Components/LaraUi", `App\View\Components\LaraUi`},
		{"app/view/components/lara-ui", `App\View\Components\LaraUi`},
		{"app/View/Components/lara_ui/", `App\View\Components\LaraUi`},
		{"src/Ui", `App\Src\Ui`},
		{"app", `App`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NamespaceFromPath(tt.path))
		})
	}
}
