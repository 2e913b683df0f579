package repository

import (
	"errors"
	"fmt"
	"slices"
)

// Table is the explicit mapping between a record type and its table.
//
// Columns lists every non-key column in a fixed order. Values must return the
// record's values in that order, and Targets must return scan destinations
// for the key followed by Columns.
type Table[T any] struct {
	Name    string
	Key     string
	Columns []string

	ID      func(*T) int64
	SetID   func(*T, int64)
	Values  func(*T) []any
	Targets func(*T) []any

	Unique []UniqueKey[T]
}

// UniqueKey describes a unique constraint over a single column.
type UniqueKey[T any] struct {
	Constraint string
	Column     string
	Value      func(*T) any
}

// AllColumns returns the key followed by Columns, the order Targets scans in.
func (t Table[T]) AllColumns() []string {
	return append([]string{t.Key}, t.Columns...)
}

// Validate checks the mapping is internally consistent.
func (t Table[T]) Validate() error {
	if t.Name == "" || t.Key == "" {
		return errors.New("table mapping needs a name and a key column")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s: no columns mapped", t.Name)
	}
	if t.ID == nil || t.SetID == nil || t.Values == nil || t.Targets == nil {
		return fmt.Errorf("table %s: ID, SetID, Values and Targets are required", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns)+1)
	for _, column := range t.AllColumns() {
		if seen[column] {
			return fmt.Errorf("table %s: column %s mapped twice", t.Name, column)
		}
		seen[column] = true
	}

	var zero T
	if n := len(t.Values(&zero)); n != len(t.Columns) {
		return fmt.Errorf("table %s: %d values for %d columns", t.Name, n, len(t.Columns))
	}
	if n := len(t.Targets(&zero)); n != len(t.Columns)+1 {
		return fmt.Errorf("table %s: %d scan targets for %d columns", t.Name, n, len(t.Columns)+1)
	}

	for _, unique := range t.Unique {
		if unique.Value == nil || unique.Constraint == "" {
			return fmt.Errorf("table %s: unique key on %s is incomplete", t.Name, unique.Column)
		}
		if !slices.Contains(t.Columns, unique.Column) {
			return fmt.Errorf("table %s: unique key on unmapped column %s", t.Name, unique.Column)
		}
	}

	return nil
}
