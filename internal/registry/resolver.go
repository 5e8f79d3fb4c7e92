package registry

import (
	"slices"

	"github.com/laraui-labs/laraui/internal/manifest"
)

// Resolve expands requested component names into the full set of components
// to install, following dependency edges transitively.
//
// Each name appears at most once. Names not found in the manifest are
// dropped, as are their (unknowable) dependencies. Each newly discovered
// dependency is pushed onto the front of the work queue, so a component is
// recorded before the dependencies it introduced and sibling dependencies
// come out in reverse declaration order: with card -> [button] and
// dialog -> [button, icon], Resolve(["card"]) yields ["card", "button"] and
// Resolve(["dialog"]) yields ["dialog", "icon", "button"]. Cycles terminate
// because resolved names are never processed again.
func Resolve(requested []string, m *manifest.Manifest) []string {
	queue := append([]string(nil), requested...)
	resolved := make(map[string]bool)
	var out []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if resolved[name] {
			continue
		}
		spec, ok := m.Component(name)
		if !ok {
			continue
		}

		for _, dep := range spec.Dependencies {
			if !resolved[dep] && !slices.Contains(queue, dep) {
				queue = append([]string{dep}, queue...)
			}
		}

		resolved[name] = true
		out = append(out, name)
	}
	return out
}
