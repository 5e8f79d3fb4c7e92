package install

import (
	"errors"
	"fmt"
)

var (
	// ErrComponentNotFound means a requested name is not in the manifest.
	ErrComponentNotFound = errors.New("component not found")

	// ErrWriteFailed means a destination file could not be written.
	ErrWriteFailed = errors.New("write failed")
)

// Status is the final state of one component install.
type Status int

const (
	// StatusInstalled means at least one file was written.
	StatusInstalled Status = iota
	// StatusSkipped means nothing was written because every file already existed.
	StatusSkipped
	// StatusError means a fetch or write failed; Outcome.Err says which.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of installing one component.
type Outcome struct {
	Status   Status
	Written  int
	Existing int
	Err      error
}

// Counts aggregates outcomes by status.
type Counts struct {
	Installed int
	Skipped   int
	Errors    int
}

// Tally counts outcomes by status.
func Tally(outcomes map[string]Outcome) Counts {
	var c Counts
	for _, o := range outcomes {
		switch o.Status {
		case StatusInstalled:
			c.Installed++
		case StatusSkipped:
			c.Skipped++
		case StatusError:
			c.Errors++
		}
	}
	return c
}

// WriteError reports a destination file that could not be written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailed, e.Cause}
}
