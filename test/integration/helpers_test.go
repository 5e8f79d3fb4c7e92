//go:build integration

package integration_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/laraui-labs/laraui/internal/config"
)

// testEnv holds an isolated project and the registry it installs from.
type testEnv struct {
	ProjectDir string
	Registry   *fakeRegistry
}

// setupTestEnv starts a registry server, points the manifest cache at a
// temp directory and writes a default config into a fresh project.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ProjectDir: t.TempDir(),
		Registry:   newFakeRegistry(t),
	}
	t.Setenv("LARAUI_CACHE_DIR", t.TempDir())

	f := config.Default()
	f.Registry = env.Registry.URL
	if err := config.Save(env.ProjectDir, f); err != nil {
		t.Fatalf("saving config: %v", err)
	}
	return env
}

// installConfig loads the project config the way the CLI does.
func (e *testEnv) installConfig(t *testing.T) config.InstallConfig {
	t.Helper()
	f, err := config.Load(e.ProjectDir)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return f.InstallConfig(e.ProjectDir)
}

// fakeRegistry serves a registry tree from memory and counts requests.
type fakeRegistry struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string]string
	hits  map[string]int
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{
		files: map[string]string{
			"registry.json":                               registryManifest,
			"src/Components/Button.php":                   buttonClass,
			"src/Components/Card.php":                     cardClass,
			"resources/views/components/button.blade.php": buttonTemplate,
			"resources/views/components/card.blade.php":   cardTemplate,
		},
		hits: make(map[string]int),
	}
	r.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := strings.TrimPrefix(req.URL.Path, "/")
		r.mu.Lock()
		r.hits[path]++
		body, ok := r.files[path]
		r.mu.Unlock()
		if !ok {
			http.NotFound(w, req)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(r.Close)
	return r
}

func (r *fakeRegistry) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

const registryManifest = `{
  "components": {
    "button": {
      "name": "Button",
      "description": "Clickable button",
      "category": "forms",
      "dependencies": [],
      "files": { "php": ["Button.php"], "blade": ["button.blade.php"] }
    },
    "card": {
      "name": "Card",
      "description": "Content container",
      "category": "layout",
      "dependencies": ["button"],
      "files": { "php": ["Card.php"], "blade": ["card.blade.php"] }
    }
  },
  "categories": {
    "forms": { "name": "Forms", "description": "Form controls" },
    "layout": { "name": "Layout", "description": "Page structure" }
  }
}`

const buttonClass = `<?php

namespace Amsiam\LaraUi\Components;

use Illuminate\View\Component;

class Button extends Component
{
    public function __construct(public string $variant = 'default') {}

    public function render()
    {
        return view('lu::components.button');
    }
}
`

const cardClass = `<?php

namespace Amsiam\LaraUi\Components;

use Illuminate\View\Component;

class Card extends Component
{
    public function render()
    {
        return view('lu::components.card');
    }
}
`

const buttonTemplate = `<button {{ $attributes->merge(['class' => 'btn']) }}>
    {{ $slot }}
</button>
`

const cardTemplate = `<div class="card">
    {{ $slot }}
    <x-lu::button>More</x-lu::button>
</div>
`

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
