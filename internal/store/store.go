// Package store loads the content library the selection engine draws from.
package store

import (
	"fmt"

	"github.com/jonathan/resume-forge/internal/types"
)

// Library provides read access to the immutable content library: the base
// items, their phrasing variants, and the conflict table. Implementations must
// return the conflict table in symmetric-closure form.
type Library interface {
	AllContentItems() ([]types.ContentItem, error)
	ConflictTable() (types.ConflictTable, error)
}

// LibraryLoadError represents an error loading or decoding a content library.
type LibraryLoadError struct {
	Message string
	Cause   error
}

func (e *LibraryLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("library load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("library load error: %s", e.Message)
}

func (e *LibraryLoadError) Unwrap() error {
	return e.Cause
}
