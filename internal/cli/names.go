package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/laraui-labs/laraui/internal/manifest"
)

// kebab converts a user-typed component name to its registry key,
// e.g. "CardHeader" and "card header" both become "card-header".
func kebab(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// selectComponents maps command arguments to manifest keys. "all" (or
// all=true) selects every component. Unknown names are reported to warn and
// dropped.
func selectComponents(warn io.Writer, args []string, all bool, m *manifest.Manifest) []string {
	if all || slices.Contains(args, "all") {
		return m.Names()
	}

	var names []string
	for _, arg := range args {
		name := kebab(arg)
		if _, ok := m.Component(name); !ok {
			fmt.Fprintf(warn, "Component '%s' not found, skipping.\n", arg)
			continue
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
