package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// entityColumns is the fixed projection of each entity. Predicates and orderings
// may only reference these columns.
var entityColumns = map[Entity][]string{
	EntityProducts: {
		"id", "name", "image_data", "store_id", "location_id", "price", "offer_price",
		"created_at", "referenced_category_id", "featured_tag_ids",
	},
	EntityCategories:   {"id", "name", "icon_url", "background_color", "text_color", "store_id"},
	EntityFeaturedTags: {"id", "name", "icon_url", "background_color", "text_color", "store_id"},
	EntityLocations:    {"id", "name", "store_id"},
}

// CatalogQuery is the Postgres implementation of CatalogQueryInterface
type CatalogQuery struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// NewCatalogQuery creates a new CatalogQuery
func NewCatalogQuery(database *sql.DB, log logrus.FieldLogger) *CatalogQuery {
	return &CatalogQuery{db: database, log: log}
}

// Ensure CatalogQuery implements CatalogQueryInterface
var _ CatalogQueryInterface = (*CatalogQuery)(nil)

// FetchByID retrieves the rows whose id is in ids, narrowed by preds. An empty id list returns no rows without a query.
func (q *CatalogQuery) FetchByID(ctx context.Context, entity Entity, ids []string, preds ...Predicate) ([]json.RawMessage, error) {
	if len(ids) == 0 {
		return []json.RawMessage{}, nil
	}
	all := make([]Predicate, 0, len(preds)+1)
	all = append(all, preds...)
	all = append(all, In("id", ids))
	return q.FetchFiltered(ctx, entity, all, Order{}, 0)
}

// FetchFiltered retrieves rows matching every predicate. limit <= 0 means no limit.
func (q *CatalogQuery) FetchFiltered(ctx context.Context, entity Entity, preds []Predicate, order Order, limit int) ([]json.RawMessage, error) {
	query, args, err := buildSelect(entity, preds, order, limit)
	if err != nil {
		return nil, err
	}

	q.log.WithFields(logrus.Fields{"entity": entity, "predicates": len(preds), "limit": limit}).
		Debug("🔍 FetchFiltered")

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	result := []json.RawMessage{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", entity, err)
		}
		row := make(json.RawMessage, len(raw))
		copy(row, raw)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", entity, err)
	}
	return result, nil
}

// FetchOne retrieves the first row matching preds, or nil when there is none
func (q *CatalogQuery) FetchOne(ctx context.Context, entity Entity, preds []Predicate) (json.RawMessage, error) {
	rows, err := q.FetchFiltered(ctx, entity, preds, Order{}, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// buildSelect renders the query for an entity:
//
//	SELECT row_to_json(t) FROM (SELECT <cols> FROM <entity> WHERE ...) t ORDER BY t.<col> LIMIT $n
func buildSelect(entity Entity, preds []Predicate, order Order, limit int) (string, []interface{}, error) {
	columns, ok := entityColumns[entity]
	if !ok {
		return "", nil, fmt.Errorf("unknown entity %q", entity)
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	var b strings.Builder
	args := []interface{}{}
	argIndex := 1

	b.WriteString("SELECT row_to_json(t) FROM (SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(string(entity))

	conditions := make([]string, 0, len(preds))
	for _, p := range preds {
		if !known[p.Column] {
			return "", nil, fmt.Errorf("unknown column %q for %s", p.Column, entity)
		}
		switch p.Op {
		case OpEq:
			conditions = append(conditions, fmt.Sprintf("%s = $%d", p.Column, argIndex))
		case OpIn:
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", p.Column, argIndex))
		case OpGte:
			conditions = append(conditions, fmt.Sprintf("%s >= $%d", p.Column, argIndex))
		case OpContains:
			conditions = append(conditions, fmt.Sprintf("%s @> $%d", p.Column, argIndex))
		case OpTextSearch:
			conditions = append(conditions, fmt.Sprintf("to_tsvector('english', %s) @@ plainto_tsquery('english', $%d)", p.Column, argIndex))
		case OpNotNull:
			conditions = append(conditions, p.Column+" IS NOT NULL")
			continue
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
		}
		args = append(args, p.Value)
		argIndex++
	}
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(") t")

	if order.Column != "" {
		if !known[order.Column] {
			return "", nil, fmt.Errorf("unknown order column %q for %s", order.Column, entity)
		}
		b.WriteString(" ORDER BY t.")
		b.WriteString(order.Column)
		if order.Descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT $%d", argIndex)
		args = append(args, limit)
	}

	return b.String(), args, nil
}
