package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse validates a registry.json document and decodes it into a Manifest.
// Schema violations, malformed JSON and a non-semver "version" are all errors;
// no partially decoded manifest is ever returned.
func Parse(data []byte) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("invalid registry manifest: %s", strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding registry manifest: %w", err)
	}

	if m.Version != "" {
		if _, err := m.SemVer(); err != nil {
			return nil, err
		}
	}
	if m.Components == nil {
		m.Components = map[string]ComponentSpec{}
	}
	if m.Categories == nil {
		m.Categories = map[string]CategoryInfo{}
	}

	return &m, nil
}

// SemVer parses the manifest version. A leading "v" is tolerated.
func (m *Manifest) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(m.Version, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing registry version %q: %w", m.Version, err)
	}
	return v, nil
}
