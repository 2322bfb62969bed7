package domain

import (
	"errors"
	"fmt"
)

// ErrNoData signals that an expected marker, module or tag is simply absent.
// Callers treat it as "this extraction path is inapplicable", not as failure.
var ErrNoData = errors.New("no embedded data found")

// FetchError reports that the origin page could not be retrieved: a network
// failure, a non-success status, or a login wall with no proxy to fall back
// to. Handlers recover from it by redirecting to the origin URL.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractorError reports that a type-specific extraction pass could not
// produce a record, either because its markers are missing from the page or
// because a matched block no longer has the expected shape. Handlers recover
// from it by escalating to the next fallback tier.
type ExtractorError struct {
	Extractor string
	Err       error
}

func (e *ExtractorError) Error() string {
	return fmt.Sprintf("%s extractor: %v", e.Extractor, e.Err)
}

func (e *ExtractorError) Unwrap() error {
	return e.Err
}
