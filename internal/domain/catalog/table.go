package catalog

import (
	"iter"

	"catreport/internal/core/id"
)

// Table is an insertion-ordered lookup table keyed by row id.
// A repeated key replaces the stored value but keeps its original position,
// so iteration order is the order in which ids were first seen.
type Table[T any] struct {
	keys []id.Key
	rows map[id.Key]T
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[id.Key]T)}
}

// Put stores v under k.
func (t *Table[T]) Put(k id.Key, v T) {
	if _, exists := t.rows[k]; !exists {
		t.keys = append(t.keys, k)
	}
	t.rows[k] = v
}

// Get returns the value stored under k.
func (t *Table[T]) Get(k id.Key) (T, bool) {
	v, ok := t.rows[k]
	return v, ok
}

// Has reports whether k is present.
func (t *Table[T]) Has(k id.Key) bool {
	_, ok := t.rows[k]
	return ok
}

// Len returns the number of distinct keys.
func (t *Table[T]) Len() int {
	return len(t.keys)
}

// All iterates over rows in insertion order.
func (t *Table[T]) All() iter.Seq2[id.Key, T] {
	return func(yield func(id.Key, T) bool) {
		for _, k := range t.keys {
			if !yield(k, t.rows[k]) {
				return
			}
		}
	}
}
