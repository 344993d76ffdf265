// Package types provides type definitions for structured data used throughout the resume-forge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies which resume section a content item belongs to.
type Category string

// Content categories recognized by the selection engine.
const (
	CategorySummary   Category = "summary"
	CategoryHighlight Category = "highlight"
	CategoryBullet    Category = "bullet"
	CategoryOverview  Category = "overview"
)

// Tags holds the industry and function tag sets attached to a content item.
type Tags struct {
	Industry []string `json:"industry"`
	Function []string `json:"function"`
}

// Variant is an alternate phrasing of a base content item, tagged with emphasis themes.
type Variant struct {
	ID        string   `json:"id"`
	BaseID    string   `json:"base_id"`
	ThemeTags []string `json:"theme_tags"`
	Text      string   `json:"text"`
}

// ContentItem is an immutable library entry. Base items are never created or
// mutated by the pipeline; they are only read and scored.
type ContentItem struct {
	ID               string    `json:"id"`
	Category         Category  `json:"category"`
	PositionSlot     int       `json:"position_slot,omitempty"` // which prior role this belongs to (0 = not role-scoped)
	Tags             Tags      `json:"tags"`
	Text             string    `json:"text"` // default phrasing, used when no variant is selected
	PhrasingVariants []Variant `json:"phrasing_variants,omitempty"`
}

// ConflictTable maps an item ID to the set of item IDs that must not co-occur
// with it in one resume. The table is always stored in symmetric-closure form:
// if A blocks B then B blocks A, and no item conflicts with itself.
type ConflictTable map[string]map[string]bool

// ConflictsWith reports whether a and b are declared mutually exclusive.
func (t ConflictTable) ConflictsWith(a, b string) bool {
	return t[a][b]
}
