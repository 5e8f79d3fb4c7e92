package transform

import (
	"regexp"
	"strings"

	"github.com/laraui-labs/laraui/internal/config"
)

// Well-known tokens used in registry sources.
const (
	CodeNamespace = `Amsiam\LaraUi\Components`
	ViewReference = "'lu::components."
	TagToken      = "x-lu::"
)

var (
	tagPattern        = regexp.MustCompile(`x-[a-z0-9]+::`)
	registryNSPattern = regexp.MustCompile(`\bnamespace\s+` + regexp.QuoteMeta(CodeNamespace) + `\s*;`)
	anyNSPattern      = regexp.MustCompile(`\bnamespace\s+[A-Za-z0-9_\\]+\s*;`)
)

const canonicalTag = "x-PREFIX::"

// RewriteCode adapts a PHP component class to the project. The first
// declaration of the well-known namespace is redeclared under
// cfg.CodeNamespaceRoot, and every view reference is pointed at the
// configured template directory.
func RewriteCode(content string, cfg config.InstallConfig) string {
	if loc := registryNSPattern.FindStringIndex(content); loc != nil {
		content = content[:loc[0]] + "namespace " + cfg.CodeNamespaceRoot + ";" + content[loc[1]:]
	}
	return strings.ReplaceAll(content, ViewReference, "'"+viewPrefix(cfg))
}

// RewriteTemplate points every registry component tag at cfg.Prefix.
func RewriteTemplate(content string, cfg config.InstallConfig) string {
	return strings.ReplaceAll(content, TagToken, "x-"+cfg.Prefix+"::")
}

// NormalizeCode reduces a PHP file to its namespace-independent form:
// namespace declarations are dropped and whitespace is collapsed. Remote
// sources must be passed through RewriteCode first so view references agree
// with the installed copy.
func NormalizeCode(content string) string {
	return collapse(anyNSPattern.ReplaceAllString(content, ""))
}

// NormalizeTemplate reduces a Blade file to its convention-independent form:
// every component tag prefix becomes x-PREFIX:: and whitespace is collapsed.
func NormalizeTemplate(content string) string {
	return collapse(tagPattern.ReplaceAllString(content, canonicalTag))
}

func viewPrefix(cfg config.InstallConfig) string {
	p := cfg.ViewPath()
	if p == "" {
		return ""
	}
	return p + "."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
