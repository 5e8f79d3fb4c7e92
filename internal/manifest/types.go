package manifest

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Manifest is the registry catalog of components and categories.
// A Manifest is never mutated after it has been parsed.
type Manifest struct {
	Version    string                   `json:"version,omitempty"`
	Components map[string]ComponentSpec `json:"components"`
	Categories map[string]CategoryInfo  `json:"categories"`
}

// ComponentSpec describes a single installable component.
type ComponentSpec struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Dependencies []string `json:"dependencies"`
	Files        Files    `json:"files"`
}

// Files lists the relative paths a component ships, split by kind.
type Files struct {
	Code     []string `json:"php"`
	Template []string `json:"blade"`
}

// CategoryInfo is the display metadata for a category id.
type CategoryInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Component returns the component registered under name.
func (m *Manifest) Component(name string) (ComponentSpec, bool) {
	if m == nil {
		return ComponentSpec{}, false
	}
	c, ok := m.Components[name]
	return c, ok
}

// Names returns all component names in lexical order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Components))
	for name := range m.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryName returns the display name for a category id, falling back to
// the title-cased id when the category is not declared.
func (m *Manifest) CategoryName(id string) string {
	if m != nil {
		if info, ok := m.Categories[id]; ok && info.Name != "" {
			return info.Name
		}
	}
	return cases.Title(language.English).String(id)
}

// CategoryDescription returns the declared description for a category id.
func (m *Manifest) CategoryDescription(id string) string {
	if m == nil {
		return ""
	}
	return m.Categories[id].Description
}

// FileCount returns the total number of code and template files.
func (c ComponentSpec) FileCount() int {
	return len(c.Files.Code) + len(c.Files.Template)
}

// DisplayName returns the declared name, or fallback when it is empty.
func (c ComponentSpec) DisplayName(fallback string) string {
	if c.Name != "" {
		return c.Name
	}
	return fallback
}
