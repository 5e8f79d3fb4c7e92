package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryUnavailable means the manifest could not be fetched or parsed.
	// No operation that needs the manifest can proceed.
	ErrRegistryUnavailable = errors.New("registry unavailable")

	// ErrFileFetchFailed means a single component file could not be fetched.
	ErrFileFetchFailed = errors.New("file fetch failed")
)

// HTTPError is a non-200 response from the registry.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s", e.StatusCode, e.URL)
}

// FileFetchError reports which file could not be fetched and why.
type FileFetchError struct {
	Path  string
	Cause error
}

func (e *FileFetchError) Error() string {
	return fmt.Sprintf("failed to fetch file '%s': %v", e.Path, e.Cause)
}

func (e *FileFetchError) Unwrap() []error {
	return []error{ErrFileFetchFailed, e.Cause}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
}
