package domain

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when a content items source does not exist
// for the requesting publisher. A source owned by a different publisher is
// indistinguishable from a missing one.
var ErrSourceNotFound = errors.New("content items source not found")

// ConfigError marks a client-actionable configuration problem: an
// unrecognized source type, malformed field mappings, or an invalid creation
// payload. Never worth retrying as-is.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// TransportError marks a failure to retrieve the raw payload from a source
// URL. The caller may reasonably retry.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError marks a raw payload the selected adapter could not parse. The
// source itself is broken; retrying without fixing it will not help.
type ParseError struct {
	SourceType SourceType
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s payload: %v", e.SourceType, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
