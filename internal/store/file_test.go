package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLibrary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validLibrary = `{
	"items": [
		{"id": "sum-1", "category": "summary", "tags": {"industry": ["fintech"], "function": ["product-management"]}, "text": "summary text"},
		{"id": "hl-1", "category": "highlight", "tags": {"industry": [], "function": []}, "text": "highlight text"},
		{"id": "b1-1", "category": "bullet", "position_slot": 1, "tags": {"industry": [], "function": []}, "text": "",
		 "phrasing_variants": [{"id": "b1-1-v1", "base_id": "b1-1", "theme_tags": ["scale"], "text": "variant text"}]}
	],
	"conflicts": {"hl-1": ["b1-1"]}
}`

func TestOpenFileLibrary_Valid(t *testing.T) {
	lib, err := OpenFileLibrary(writeLibrary(t, validLibrary))
	require.NoError(t, err)

	items, err := lib.AllContentItems()
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "sum-1", items[0].ID)
	assert.Len(t, items[2].PhrasingVariants, 1)
}

func TestOpenFileLibrary_ConflictTableIsSymmetric(t *testing.T) {
	lib, err := OpenFileLibrary(writeLibrary(t, validLibrary))
	require.NoError(t, err)

	table, err := lib.ConflictTable()
	require.NoError(t, err)
	assert.True(t, table.ConflictsWith("hl-1", "b1-1"))
	assert.True(t, table.ConflictsWith("b1-1", "hl-1"), "closure must make declared conflicts bidirectional")
}

func TestOpenFileLibrary_MissingFile(t *testing.T) {
	_, err := OpenFileLibrary(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	var loadErr *LibraryLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestOpenFileLibrary_InvalidJSON(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, "not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestOpenFileLibrary_EmptyLibrary(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, `{"items": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content items")
}

func TestOpenFileLibrary_DuplicateID(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, `{"items": [
		{"id": "a", "category": "highlight", "text": "one"},
		{"id": "a", "category": "highlight", "text": "two"}
	]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate item id "a"`)
}

func TestOpenFileLibrary_UnknownCategory(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, `{"items": [
		{"id": "a", "category": "sidebar", "text": "one"}
	]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestOpenFileLibrary_ItemWithoutText(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, `{"items": [
		{"id": "a", "category": "highlight", "text": ""}
	]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text and no phrasing variants")
}

func TestOpenFileLibrary_ConflictReferencesUnknownItem(t *testing.T) {
	_, err := OpenFileLibrary(writeLibrary(t, `{
		"items": [{"id": "a", "category": "highlight", "text": "one"}],
		"conflicts": {"a": ["ghost"]}
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown item "ghost"`)
}
