package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/registry.schema.json
var registrySchemaJSON []byte

const registrySchemaURL = "registry.schema.json"

var (
	registrySchema = sync.OnceValues(compileRegistrySchema)
	printer        = message.NewPrinter(language.English)
)

// ValidationResult holds the schema problems found in a registry.json
// document. Valid is true when Issues is empty.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation, located by JSON pointer into the
// registry document (e.g. "/components/card/files/blade/0").
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func compileRegistrySchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(registrySchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("reading registry schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(registrySchemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding registry schema: %w", err)
	}
	s, err := c.Compile(registrySchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling registry schema: %w", err)
	}
	return s, nil
}

// Validate checks a raw registry.json document against the embedded
// registry schema. A document that is not JSON is an error; a JSON document
// that breaks the schema is reported through the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := registrySchema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating registry manifest: %w", err)
	}

	issues := leafIssues(ve)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	return &ValidationResult{Issues: issues}, nil
}

// leafIssues flattens the error tree into the failing leaf keywords, in
// document order and without repeats.
func leafIssues(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		for _, cause := range ve.Causes {
			walk(cause)
		}
		if len(ve.Causes) > 0 || ve.ErrorKind == nil {
			return
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			return
		}
		issue := ValidationIssue{
			Path:    pointer(ve.InstanceLocation),
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: kw[len(kw)-1],
		}
		if issue.Keyword == "$ref" || issue.Keyword == "allOf" {
			return
		}
		if !slices.Contains(issues, issue) {
			issues = append(issues, issue)
		}
	}
	walk(root)
	return issues
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}
