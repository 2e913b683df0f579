// Package repository handles all interactions with the backing store.
//
// It exposes one generic CRUD contract, Gateway, reused by any record type.
// A Table describes how a record maps onto its columns; the PostgreSQL and
// in-memory gateways both work from that mapping, so adding an entity means
// writing a Table, not another repository.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/maska/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// Gateway is the generic persistence contract. Each call is a single round
// trip to the store; there is no caching and no cross-call transaction.
type Gateway[T any] interface {
	// Save inserts an unpersisted record and returns it with its assigned id.
	// A record that already carries an id is updated instead.
	Save(ctx context.Context, t T) (T, error)

	// Update replaces every column of the record identified by its id.
	Update(ctx context.Context, t T) (T, error)

	// Delete removes the record identified by t's id and returns the removed row.
	Delete(ctx context.Context, t T) (T, error)

	// FindByID reports found=false, with a nil error, when no record has id.
	FindByID(ctx context.Context, id int64) (t T, found bool, err error)

	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]T, error)
}

// IsNotFound reports whether err is a gateway not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// notFound builds the error returned when Update or Delete addresses a
// missing id. The table prefix lets the HTTP layer name the entity.
func notFound(table string, id int64) error {
	return fmt.Errorf("%s%s: id %d: %w", sqlerr.TablePrefix, table, id, pgx.ErrNoRows)
}
