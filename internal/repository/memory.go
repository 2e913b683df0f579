package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryGateway keeps records in process memory. It enforces the table's
// unique keys and reports violations as the same *pgconn.PgError PostgreSQL
// returns, so callers handle both backends identically.
type MemoryGateway[T any] struct {
	mu     sync.RWMutex
	table  Table[T]
	rows   map[int64]T
	order  []int64
	nextID int64
}

var _ Gateway[struct{}] = (*MemoryGateway[struct{}])(nil)

func NewMemoryGateway[T any](table Table[T]) (*MemoryGateway[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	return &MemoryGateway[T]{
		table:  table,
		rows:   make(map[int64]T),
		nextID: 1,
	}, nil
}

func (g *MemoryGateway[T]) Save(ctx context.Context, t T) (T, error) {
	if g.table.ID(&t) != 0 {
		return g.Update(ctx, t)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkUnique(&t, 0); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to insert into %s: %w", g.table.Name, err)
	}

	id := g.nextID
	g.nextID++
	g.table.SetID(&t, id)
	g.rows[id] = t
	g.order = append(g.order, id)

	return t, nil
}

func (g *MemoryGateway[T]) Update(_ context.Context, t T) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var zero T
	id := g.table.ID(&t)
	if _, ok := g.rows[id]; !ok {
		return zero, notFound(g.table.Name, id)
	}
	if err := g.checkUnique(&t, id); err != nil {
		return zero, fmt.Errorf("failed to update %s id %d: %w", g.table.Name, id, err)
	}

	g.rows[id] = t
	return t, nil
}

func (g *MemoryGateway[T]) Delete(_ context.Context, t T) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.table.ID(&t)
	deleted, ok := g.rows[id]
	if !ok {
		var zero T
		return zero, notFound(g.table.Name, id)
	}

	delete(g.rows, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	return deleted, nil
}

func (g *MemoryGateway[T]) FindByID(_ context.Context, id int64) (T, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, ok := g.rows[id]
	return t, ok, nil
}

func (g *MemoryGateway[T]) FindAll(_ context.Context) ([]T, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	all := make([]T, 0, len(g.order))
	for _, id := range g.order {
		all = append(all, g.rows[id])
	}
	return all, nil
}

// checkUnique must be called with mu held. self is the id of the record
// being updated, or 0 on insert.
func (g *MemoryGateway[T]) checkUnique(t *T, self int64) error {
	for _, unique := range g.table.Unique {
		value := unique.Value(t)
		for id, existing := range g.rows {
			if id == self {
				continue
			}
			if unique.Value(&existing) == value {
				return &pgconn.PgError{
					Severity:       "ERROR",
					Code:           "23505",
					Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", unique.Constraint),
					Detail:         fmt.Sprintf("Key (%s)=(%v) already exists.", unique.Column, value),
					TableName:      g.table.Name,
					ConstraintName: unique.Constraint,
				}
			}
		}
	}
	return nil
}
