package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-forge/internal/conflicts"
	"github.com/jonathan/resume-forge/internal/types"
)

// libraryFile is the on-disk shape of a content library. Conflicts are
// declared one-directional; the loader derives the symmetric closure.
type libraryFile struct {
	Items     []types.ContentItem `json:"items"`
	Conflicts map[string][]string `json:"conflicts,omitempty"`
}

// FileLibrary is a Library backed by a single JSON file, loaded once at
// construction. The loaded data is never mutated afterwards.
type FileLibrary struct {
	items []types.ContentItem
	table types.ConflictTable
}

// OpenFileLibrary reads and validates a content library JSON file.
func OpenFileLibrary(path string) (*FileLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LibraryLoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}

	var file libraryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &LibraryLoadError{Message: "failed to parse library JSON", Cause: err}
	}

	if len(file.Items) == 0 {
		return nil, &LibraryLoadError{Message: "library contains no content items"}
	}

	seen := make(map[string]bool, len(file.Items))
	for i, item := range file.Items {
		if item.ID == "" {
			return nil, &LibraryLoadError{Message: fmt.Sprintf("item at index %d has no id", i)}
		}
		if seen[item.ID] {
			return nil, &LibraryLoadError{Message: fmt.Sprintf("duplicate item id %q", item.ID)}
		}
		seen[item.ID] = true
		if item.Text == "" && len(item.PhrasingVariants) == 0 {
			return nil, &LibraryLoadError{Message: fmt.Sprintf("item %q has no text and no phrasing variants", item.ID)}
		}
		switch item.Category {
		case types.CategorySummary, types.CategoryHighlight, types.CategoryBullet, types.CategoryOverview:
		default:
			return nil, &LibraryLoadError{Message: fmt.Sprintf("item %q has unknown category %q", item.ID, item.Category)}
		}
	}

	for id, blocked := range file.Conflicts {
		if !seen[id] {
			return nil, &LibraryLoadError{Message: fmt.Sprintf("conflict entry references unknown item %q", id)}
		}
		for _, other := range blocked {
			if !seen[other] {
				return nil, &LibraryLoadError{Message: fmt.Sprintf("conflict entry for %q references unknown item %q", id, other)}
			}
		}
	}

	return &FileLibrary{
		items: file.Items,
		table: conflicts.SymmetricClosure(file.Conflicts),
	}, nil
}

// AllContentItems returns every item in the library, in file order.
func (l *FileLibrary) AllContentItems() ([]types.ContentItem, error) {
	return l.items, nil
}

// ConflictTable returns the symmetric conflict table derived at load time.
func (l *FileLibrary) ConflictTable() (types.ConflictTable, error) {
	return l.table, nil
}
