package site

import (
	"fmt"
	"strings"
)

// ArtifactError records the failure of one artifact during a build.
type ArtifactError struct {
	Artifact string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("%s: %v", e.Artifact, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// ErrorCollector gathers artifact failures so a build can continue
// past a single bad artifact and report everything at the end.
type ErrorCollector struct {
	errs []*ArtifactError
}

// NewErrorCollector returns an empty collector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add records err against artifact. Nil errors are ignored.
func (c *ErrorCollector) Add(artifact string, err error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, &ArtifactError{Artifact: artifact, Err: err})
}

// HasErrors reports whether any failure was recorded.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the recorded failures in the order they occurred.
func (c *ErrorCollector) Errors() []*ArtifactError {
	return c.errs
}

// Err returns a single error summarizing all failures, or nil.
func (c *ErrorCollector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	parts := make([]string, len(c.errs))
	for i, e := range c.errs {
		parts[i] = e.Error()
	}
	return fmt.Errorf("%d artifact(s) failed: %s", len(c.errs), strings.Join(parts, "; "))
}
