package github

import (
	"fmt"
	"strings"
)

// StatusError reports a response status outside the set the caller
// declared acceptable for a request. It is never retried; the whole
// run aborts on the first one.
type StatusError struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s for %s %s", e.Status, e.Reason, e.Method, e.URL)
}

// UnresolvedError reports a name or id that is absent from a name/id
// cache. Writing through an unresolved reference would silently send a
// bad id, so lookups fail loudly instead of falling back.
type UnresolvedError struct {
	Collection string `json:"collection"`
	Name       string `json:"name,omitempty"`
	ID         int64  `json:"id,omitempty"`
}

// Error implements the error interface.
func (e *UnresolvedError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unresolved %s reference: no id for name %q", e.Collection, e.Name)
	}
	return fmt.Sprintf("unresolved %s reference: no name for id %d", e.Collection, e.ID)
}

// SourceError reports a rule whose source does not name a repository
// inside the configured organization. Such a rule must never be
// written.
type SourceError struct {
	Source string `json:"source"`
	Org    string `json:"org"`
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("rule source %q is not a repository of organization %q", e.Source, e.Org)
}

// ValidationError represents a single malformed-document finding.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors collects every finding for one document so the
// caller sees them all at once.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i := range e {
		msgs[i] = e[i].Error()
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(msgs, "; "))
}

// Add appends a finding to the collection.
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{Field: field, Value: value, Message: message})
}

// HasErrors reports whether any findings were collected.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
