// Package conflicts derives and applies mutual-exclusion rules between content items.
package conflicts

import (
	"sort"

	"github.com/jonathan/resume-forge/internal/types"
)

// SymmetricClosure builds a bidirectional ConflictTable from a one-directional
// source table. The source only needs to declare each pair once; the closure
// guarantees that if A blocks B then B blocks A. Self-conflicts are dropped.
func SymmetricClosure(source map[string][]string) types.ConflictTable {
	table := make(types.ConflictTable, len(source))
	add := func(a, b string) {
		if a == b || a == "" || b == "" {
			return
		}
		if table[a] == nil {
			table[a] = make(map[string]bool)
		}
		table[a][b] = true
	}
	for id, blocked := range source {
		for _, other := range blocked {
			add(id, other)
			add(other, id)
		}
	}
	return table
}

// Resolver tracks which item IDs are blocked for the remainder of a run.
// Blocking is irreversible: once an ID is blocked it stays blocked even if a
// later category would have scored it highest. Earlier-selected sections are
// typically higher visibility, so they win ties over later ones.
type Resolver struct {
	table   types.ConflictTable
	blocked map[string]bool
}

// NewResolver creates a Resolver over a symmetric conflict table.
func NewResolver(table types.ConflictTable) *Resolver {
	return &Resolver{
		table:   table,
		blocked: make(map[string]bool),
	}
}

// Block records the conflict sets of all selected base IDs, removing every
// conflicting item from future eligibility. Selected IDs themselves are also
// blocked so no later category can re-select them.
func (r *Resolver) Block(selectedBaseIDs []string) {
	for _, id := range selectedBaseIDs {
		r.blocked[id] = true
		for other := range r.table[id] {
			r.blocked[other] = true
		}
	}
}

// IsBlocked reports whether an item ID has been blocked in this run.
func (r *Resolver) IsBlocked(id string) bool {
	return r.blocked[id]
}

// BlockedIDs returns the sorted set of all blocked item IDs.
func (r *Resolver) BlockedIDs() []string {
	ids := make([]string, 0, len(r.blocked))
	for id := range r.blocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Filter returns the items from the pool that are still eligible. The filter
// must run before scoring so blocked items never enter a scoring pass.
func (r *Resolver) Filter(pool []types.ContentItem) []types.ContentItem {
	eligible := make([]types.ContentItem, 0, len(pool))
	for _, item := range pool {
		if !r.blocked[item.ID] {
			eligible = append(eligible, item)
		}
	}
	return eligible
}
