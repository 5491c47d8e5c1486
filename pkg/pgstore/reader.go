package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hashicorp-forge/catalog/pkg/entityref"
	"github.com/hashicorp-forge/catalog/pkg/resolve"
)

// Querier is the subset of pgxpool.Pool used by Reader.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// ScanFunc scans a single row selected with a Reader's columns.
type ScanFunc[E any] func(row pgx.Row) (*E, error)

// Reader reads entities of type E from a table with "uuid" and "slug"
// columns. Soft-deleted rows are ignored.
type Reader[E any] struct {
	q       Querier
	table   string
	columns string
	scan    ScanFunc[E]
}

// NewReader returns a Reader for table, selecting columns and scanning rows
// with scan.
func NewReader[E any](q Querier, table, columns string, scan ScanFunc[E]) *Reader[E] {
	return &Reader[E]{
		q:       q,
		table:   table,
		columns: columns,
		scan:    scan,
	}
}

// FindByID returns the entity with the given UUID, or nil if there is none.
func (r *Reader[E]) FindByID(ctx context.Context, id string) (*E, error) {
	// Casting a malformed string to uuid is a query error in PostgreSQL, not a
	// miss.
	if !entityref.IsCanonicalUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "uuid", id)
}

// FindBySlug returns the entity with the given slug, or nil if there is none.
func (r *Reader[E]) FindBySlug(ctx context.Context, slug string) (*E, error) {
	return r.findOne(ctx, "slug", slug)
}

func (r *Reader[E]) findOne(ctx context.Context, column, value string) (*E, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND deleted_at IS NULL LIMIT 1",
		r.columns, r.table, column,
	)

	e, err := r.scan(r.q.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by %s: %w", r.table, column, err)
	}
	return e, nil
}

// Assert the readers satisfy the resolver's capability set.
var _ resolve.Repository[struct{}] = (*Reader[struct{}])(nil)
