package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresGateway implements Gateway on top of pgx. Statements are built
// once from the table mapping.
type PostgresGateway[T any] struct {
	db    DBTX
	table Table[T]

	insertSQL     string
	updateSQL     string
	deleteSQL     string
	selectByIDSQL string
	selectAllSQL  string
}

var _ Gateway[struct{}] = (*PostgresGateway[struct{}])(nil)

func NewPostgresGateway[T any](db DBTX, table Table[T]) (*PostgresGateway[T], error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	returning := strings.Join(table.AllColumns(), ", ")

	inserts := make([]string, len(table.Columns))
	sets := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		inserts[i] = fmt.Sprintf("$%d", i+1)
		// $1 is reserved for the key in UPDATE.
		sets[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	return &PostgresGateway[T]{
		db:    db,
		table: table,
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table.Name, strings.Join(table.Columns, ", "), strings.Join(inserts, ", "), returning),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1 RETURNING %s",
			table.Name, strings.Join(sets, ", "), table.Key, returning),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING %s",
			table.Name, table.Key, returning),
		selectByIDSQL: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
			returning, table.Name, table.Key),
		selectAllSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
			returning, table.Name, table.Key),
	}, nil
}

func (g *PostgresGateway[T]) Save(ctx context.Context, t T) (T, error) {
	if g.table.ID(&t) != 0 {
		return g.Update(ctx, t)
	}

	saved, err := g.scan(g.db.QueryRow(ctx, g.insertSQL, g.table.Values(&t)...))
	if err != nil {
		return saved, fmt.Errorf("failed to insert into %s: %w", g.table.Name, err)
	}
	return saved, nil
}

func (g *PostgresGateway[T]) Update(ctx context.Context, t T) (T, error) {
	id := g.table.ID(&t)
	args := append([]any{id}, g.table.Values(&t)...)

	updated, err := g.scan(g.db.QueryRow(ctx, g.updateSQL, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return updated, notFound(g.table.Name, id)
	}
	if err != nil {
		return updated, fmt.Errorf("failed to update %s id %d: %w", g.table.Name, id, err)
	}
	return updated, nil
}

func (g *PostgresGateway[T]) Delete(ctx context.Context, t T) (T, error) {
	id := g.table.ID(&t)

	deleted, err := g.scan(g.db.QueryRow(ctx, g.deleteSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return deleted, notFound(g.table.Name, id)
	}
	if err != nil {
		return deleted, fmt.Errorf("failed to delete %s id %d: %w", g.table.Name, id, err)
	}
	return deleted, nil
}

func (g *PostgresGateway[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	found, err := g.scan(g.db.QueryRow(ctx, g.selectByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return found, false, nil
	}
	if err != nil {
		return found, false, fmt.Errorf("failed to find %s id %d: %w", g.table.Name, id, err)
	}
	return found, true, nil
}

func (g *PostgresGateway[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := g.db.Query(ctx, g.selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", g.table.Name, err)
	}

	all, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return g.scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s: %w", g.table.Name, err)
	}
	return all, nil
}

// VerifySchema checks that every mapped column exists on the table in the
// current schema. Run it once at startup so a mapping drift fails fast
// instead of on the first request.
func (g *PostgresGateway[T]) VerifySchema(ctx context.Context) error {
	rows, err := g.db.Query(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1",
		g.table.Name)
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", g.table.Name, err)
	}

	columns, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", g.table.Name, err)
	}
	if len(columns) == 0 {
		return fmt.Errorf("table %s does not exist, run migrations first", g.table.Name)
	}

	existing := make(map[string]bool, len(columns))
	for _, column := range columns {
		existing[column] = true
	}

	var missing []string
	for _, column := range g.table.AllColumns() {
		if !existing[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing mapped columns: %s", g.table.Name, strings.Join(missing, ", "))
	}

	return nil
}

func (g *PostgresGateway[T]) scan(row pgx.Row) (T, error) {
	var t T
	err := row.Scan(g.table.Targets(&t)...)
	return t, err
}
