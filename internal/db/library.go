package db

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-forge/internal/conflicts"
	"github.com/jonathan/resume-forge/internal/types"
)

// Library adapts a DB connection to the store.Library interface, so the
// selection engine can read the content library from PostgreSQL instead of a
// JSON file. Queries use a background-compatible context captured at
// construction because the store interface is context-free.
type Library struct {
	db  *DB
	ctx context.Context
}

// NewLibrary creates a database-backed content library.
func (db *DB) NewLibrary(ctx context.Context) *Library {
	return &Library{db: db, ctx: ctx}
}

// AllContentItems loads every content item together with its phrasing variants.
func (l *Library) AllContentItems() ([]types.ContentItem, error) {
	rows, err := l.db.pool.Query(l.ctx,
		`SELECT id, category, position_slot, industry_tags, function_tags, text
		 FROM content_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	defer rows.Close()

	var items []types.ContentItem
	index := make(map[string]int)
	for rows.Next() {
		var item types.ContentItem
		if err := rows.Scan(&item.ID, &item.Category, &item.PositionSlot,
			&item.Tags.Industry, &item.Tags.Function, &item.Text); err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content item rows: %w", err)
	}

	variantRows, err := l.db.pool.Query(l.ctx,
		`SELECT id, base_id, theme_tags, text FROM phrasing_variants ORDER BY base_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query phrasing variants: %w", err)
	}
	defer variantRows.Close()

	for variantRows.Next() {
		var v types.Variant
		if err := variantRows.Scan(&v.ID, &v.BaseID, &v.ThemeTags, &v.Text); err != nil {
			return nil, fmt.Errorf("failed to scan phrasing variant: %w", err)
		}
		i, ok := index[v.BaseID]
		if !ok {
			return nil, fmt.Errorf("phrasing variant %s references unknown item %s", v.ID, v.BaseID)
		}
		items[i].PhrasingVariants = append(items[i].PhrasingVariants, v)
	}
	if err := variantRows.Err(); err != nil {
		return nil, fmt.Errorf("phrasing variant rows: %w", err)
	}

	return items, nil
}

// ConflictTable loads the one-directional conflict pairs and returns their
// symmetric closure.
func (l *Library) ConflictTable() (types.ConflictTable, error) {
	rows, err := l.db.pool.Query(l.ctx,
		`SELECT item_id, conflicts_with FROM content_conflicts`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	source := make(map[string][]string)
	for rows.Next() {
		var id, other string
		if err := rows.Scan(&id, &other); err != nil {
			return nil, fmt.Errorf("failed to scan conflict row: %w", err)
		}
		source[id] = append(source[id], other)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("conflict rows: %w", err)
	}

	return conflicts.SymmetricClosure(source), nil
}
