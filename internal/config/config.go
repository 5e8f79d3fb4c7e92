package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/laraui-labs/laraui/internal/branding"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fileType = "json"

// Defaults for every recognized key.
const (
	DefaultComponentsPath = "resources/views/components/ui"
	DefaultUtilsPath      = "app/View/Components/LaraUi"
	DefaultPrefix         = "ui"
	DefaultCSSPath        = "resources/css/app.css"
	DefaultTailwindConfig = "tailwind.config.js"

	// TemplateRoot is the project directory Blade view names are relative to.
	TemplateRoot = "resources/views"
)

// ErrNotInitialized is returned by Load when the project has no config file.
var ErrNotInitialized = errors.New("project is not initialized")

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// File is the typed content of the project config file. Only the fields
// below are recognized; any other key makes Load fail.
type File struct {
	Registry  string   `mapstructure:"registry"`
	Prefix    string   `mapstructure:"prefix"`
	Namespace string   `mapstructure:"namespace"`
	Aliases   Aliases  `mapstructure:"aliases"`
	Tailwind  Tailwind `mapstructure:"tailwind"`
}

// Aliases are the destination directories, relative to the project root.
type Aliases struct {
	Components string `mapstructure:"components"` // Blade templates
	Utils      string `mapstructure:"utils"`      // PHP component classes
}

// Tailwind holds the stylesheet locations recorded at init time.
type Tailwind struct {
	Config string `mapstructure:"config"`
	CSS    string `mapstructure:"css"`
}

// InstallConfig is everything the installer and diff engine need for one
// invocation. It is derived from File and never written back.
type InstallConfig struct {
	CodeDestDir       string
	TemplateDestDir   string
	TemplateRoot      string
	Prefix            string
	RegistryBaseURL   string
	CodeNamespaceRoot string
}

// Keys lists every recognized dotted key, in file order.
var Keys = []string{
	"registry",
	"prefix",
	"namespace",
	"aliases.components",
	"aliases.utils",
	"tailwind.css",
	"tailwind.config",
}

// Path returns the config file location for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, branding.ConfigFile())
}

// Exists reports whether the project has a config file.
func Exists(projectRoot string) bool {
	_, err := os.Stat(Path(projectRoot))
	return err == nil
}

// Default returns a File populated with the default value of every key.
func Default() *File {
	return &File{
		Registry: branding.DefaultRegistry(),
		Prefix:   DefaultPrefix,
		Aliases: Aliases{
			Components: DefaultComponentsPath,
			Utils:      DefaultUtilsPath,
		},
		Tailwind: Tailwind{
			Config: DefaultTailwindConfig,
			CSS:    DefaultCSSPath,
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	for _, key := range Keys {
		value, _ := d.Get(key)
		v.SetDefault(key, value)
	}
	return v
}

// Load reads the project config file, applies defaults and LARAUI_*
// environment overrides, and validates the result.
func Load(projectRoot string) (*File, error) {
	path := Path(projectRoot)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found", ErrNotInitialized, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f File
	if err := v.UnmarshalExact(&f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &f, nil
}

// Save writes f to the project config file, replacing any existing file.
func Save(projectRoot string, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(fileType)
	for _, key := range Keys {
		value, _ := f.Get(key)
		if value == "" && key == "namespace" {
			continue
		}
		v.Set(key, value)
	}

	path := Path(projectRoot)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Get returns the value of a recognized dotted key.
func (f *File) Get(key string) (string, error) {
	switch key {
	case "registry":
		return f.Registry, nil
	case "prefix":
		return f.Prefix, nil
	case "namespace":
		return f.Namespace, nil
	case "aliases.components":
		return f.Aliases.Components, nil
	case "aliases.utils":
		return f.Aliases.Utils, nil
	case "tailwind.css":
		return f.Tailwind.CSS, nil
	case "tailwind.config":
		return f.Tailwind.Config, nil
	default:
		return "", unknownKey(key)
	}
}

// Set assigns a recognized dotted key. The result is not validated until
// Save or Validate is called.
func (f *File) Set(key, value string) error {
	switch key {
	case "registry":
		f.Registry = value
	case "prefix":
		f.Prefix = value
	case "namespace":
		f.Namespace = value
	case "aliases.components":
		f.Aliases.Components = value
	case "aliases.utils":
		f.Aliases.Utils = value
	case "tailwind.css":
		f.Tailwind.CSS = value
	case "tailwind.config":
		f.Tailwind.Config = value
	default:
		return unknownKey(key)
	}
	return nil
}

func unknownKey(key string) error {
	known := append([]string(nil), Keys...)
	sort.Strings(known)
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(known, ", "))
}

// Validate checks every field for a usable value.
func (f *File) Validate() error {
	var errs []error

	u, err := url.Parse(f.Registry)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("registry must be an http(s) URL, got %q", f.Registry))
	}
	if !prefixPattern.MatchString(f.Prefix) {
		errs = append(errs, fmt.Errorf("prefix must match %s, got %q", prefixPattern, f.Prefix))
	}
	if strings.TrimSpace(f.Aliases.Components) == "" {
		errs = append(errs, errors.New("aliases.components must not be empty"))
	}
	if strings.TrimSpace(f.Aliases.Utils) == "" {
		errs = append(errs, errors.New("aliases.utils must not be empty"))
	}

	return errors.Join(errs...)
}

// InstallConfig derives the per-invocation install settings for a project.
func (f *File) InstallConfig(projectRoot string) InstallConfig {
	namespace := f.Namespace
	if namespace == "" {
		namespace = NamespaceFromPath(f.Aliases.Utils)
	}

	return InstallConfig{
		CodeDestDir:       resolvePath(projectRoot, f.Aliases.Utils),
		TemplateDestDir:   resolvePath(projectRoot, f.Aliases.Components),
		TemplateRoot:      resolvePath(projectRoot, TemplateRoot),
		Prefix:            f.Prefix,
		RegistryBaseURL:   strings.TrimRight(f.Registry, "/"),
		CodeNamespaceRoot: namespace,
	}
}

// WithDestination returns a copy of c that installs code into dir/Components
// and templates into dir/views. dir becomes the template root, so generated
// view references read "views.<name>".
func (c InstallConfig) WithDestination(projectRoot, dir string) InstallConfig {
	base := resolvePath(projectRoot, dir)
	c.CodeDestDir = filepath.Join(base, "Components")
	c.TemplateDestDir = filepath.Join(base, "views")
	c.TemplateRoot = base
	return c
}

// ViewPath returns the dotted view name prefix of the template destination,
// e.g. "components.ui" for resources/views/components/ui. A destination
// outside the template root falls back to its base name.
func (c InstallConfig) ViewPath() string {
	rel, err := filepath.Rel(c.TemplateRoot, c.TemplateDestDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(c.TemplateDestDir)
	}
	if rel == "." {
		return ""
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

func resolvePath(projectRoot, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(projectRoot, filepath.FromSlash(p))
}

// NamespaceFromPath converts a project-relative directory into a PHP
// namespace rooted at App, e.g. "app/View/Components/lara-ui" becomes
// "App\View\Components\LaraUi".
func NamespaceFromPath(p string) string {
	caser := cases.Title(language.English, cases.NoLower)

	var segments []string
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		words := strings.FieldsFunc(seg, func(r rune) bool {
			return r == '-' || r == '_' || r == ' '
		})
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = caser.String(w)
		}
		segments = append(segments, strings.Join(words, ""))
	}

	namespace := strings.Join(segments, `\`)
	if namespace != "App" && !strings.HasPrefix(namespace, `App\`) {
		namespace = `App\` + namespace
	}
	return namespace
}
