package install

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/laraui-labs/laraui/internal/config"
	"github.com/laraui-labs/laraui/internal/manifest"
	"github.com/laraui-labs/laraui/internal/transform"
)

// Registry directories component files are fetched from, relative to the
// registry base URL.
const (
	CodeSourceDir     = "src/Components"
	TemplateSourceDir = "resources/views/components"
)

var errEscapesDestination = errors.New("path escapes destination directory")

// File is one declared component file with its source and destination.
type File struct {
	// Rel is the path declared in the manifest.
	Rel string
	// Source is the path relative to the registry base URL.
	Source string
	// Dest is the local destination path.
	Dest string
	// Template is true for Blade templates and false for PHP classes.
	Template bool
}

// Rewrite applies the transform matching the file kind.
func (f File) Rewrite(content string, cfg config.InstallConfig) string {
	if f.Template {
		return transform.RewriteTemplate(content, cfg)
	}
	return transform.RewriteCode(content, cfg)
}

// Normalize applies the normalizer matching the file kind.
func (f File) Normalize(content string) string {
	if f.Template {
		return transform.NormalizeTemplate(content)
	}
	return transform.NormalizeCode(content)
}

// Files lists a component's code files followed by its template files.
// Declared paths that would land outside their destination directory are
// returned as an error naming the offending path.
func Files(spec manifest.ComponentSpec, cfg config.InstallConfig) ([]File, error) {
	files := make([]File, 0, spec.FileCount())
	for _, rel := range spec.Files.Code {
		f, err := newFile(rel, CodeSourceDir, cfg.CodeDestDir, false)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	for _, rel := range spec.Files.Template {
		f, err := newFile(rel, TemplateSourceDir, cfg.TemplateDestDir, true)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func newFile(rel, srcDir, destDir string, template bool) (File, error) {
	dest := filepath.Join(destDir, filepath.FromSlash(rel))
	if filepath.IsAbs(filepath.FromSlash(rel)) || !isPathWithinDir(dest, destDir) || dest == filepath.Clean(destDir) {
		return File{}, &WriteError{Path: rel, Cause: fmt.Errorf("%w: %s", errEscapesDestination, destDir)}
	}
	return File{
		Rel:      rel,
		Source:   path.Join(srcDir, rel),
		Dest:     dest,
		Template: template,
	}, nil
}

func isPathWithinDir(p, dir string) bool {
	pathClean := filepath.Clean(p)
	dirClean := filepath.Clean(dir)
	if pathClean == dirClean {
		return true
	}
	return strings.HasPrefix(pathClean, dirClean+string(os.PathSeparator))
}
