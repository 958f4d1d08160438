package store

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Entity names the collection a row belongs to
type Entity string

const (
	EntityStudent      Entity = "student"
	EntityFaculty      Entity = "faculty"
	EntityProgram      Entity = "program"
	EntityCourse       Entity = "course"
	EntitySection      Entity = "section"
	EntityAssignment   Entity = "assignment"
	EntityAdmin        Entity = "admin"
	EntityAnnouncement Entity = "announcement"
	EntityTeachable    Entity = "teachable"
	EntityCredential   Entity = "credential"
)

// Table is an id-keyed collection of one entity type.
// Values handed out are copies; writes go through Put and Delete so they
// can be journaled by the enclosing unit of work.
type Table[K cmp.Ordered, V any] struct {
	entity  Entity
	rows    map[K]V
	clone   func(V) V
	equal   func(a, b V) bool
	locate  func(*State) *Table[K, V]
	journal *journal
}

func newTable[K cmp.Ordered, V any](entity Entity, locate func(*State) *Table[K, V], clone func(V) V) *Table[K, V] {
	return &Table[K, V]{
		entity: entity,
		rows:   make(map[K]V),
		clone:  clone,
		locate: locate,
	}
}

// comparing replaces the equality used to detect stale changes
func (t *Table[K, V]) comparing(equal func(a, b V) bool) *Table[K, V] {
	t.equal = equal
	return t
}

func (t *Table[K, V]) same(a, b V) bool {
	if t.equal != nil {
		return t.equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func (t *Table[K, V]) copyValue(v V) V {
	if t.clone == nil {
		return v
	}
	return t.clone(v)
}

// fork copies the table for a new unit of work
func (t *Table[K, V]) fork(j *journal) *Table[K, V] {
	out := &Table[K, V]{
		entity:  t.entity,
		rows:    make(map[K]V, len(t.rows)),
		clone:   t.clone,
		equal:   t.equal,
		locate:  t.locate,
		journal: j,
	}
	for k, v := range t.rows {
		out.rows[k] = v
	}
	return out
}

// Get returns the row stored under k
func (t *Table[K, V]) Get(k K) (V, bool) {
	v, ok := t.rows[k]
	if !ok {
		var zero V
		return zero, false
	}
	return t.copyValue(v), true
}

// Has reports whether a row exists under k
func (t *Table[K, V]) Has(k K) bool {
	_, ok := t.rows[k]
	return ok
}

// Len returns the number of rows
func (t *Table[K, V]) Len() int {
	return len(t.rows)
}

// Keys returns every key in ascending order
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// List returns every row in ascending key order
func (t *Table[K, V]) List() []V {
	return t.Filter(nil)
}

// Filter returns the rows matching pred in ascending key order.
// A nil pred matches everything.
func (t *Table[K, V]) Filter(pred func(V) bool) []V {
	out := make([]V, 0, len(t.rows))
	for _, k := range t.Keys() {
		v := t.rows[k]
		if pred == nil || pred(v) {
			out = append(out, t.copyValue(v))
		}
	}
	return out
}

// Count returns the number of rows matching pred
func (t *Table[K, V]) Count(pred func(V) bool) int {
	n := 0
	for _, v := range t.rows {
		if pred(v) {
			n++
		}
	}
	return n
}

// Put inserts or replaces the row under k
func (t *Table[K, V]) Put(k K, v V) {
	var before *V
	if old, ok := t.rows[k]; ok {
		before = &old
	}
	stored := t.copyValue(v)
	t.rows[k] = stored
	after := t.copyValue(stored)
	t.record(k, before, &after)
}

// Delete removes the row under k and reports whether it existed
func (t *Table[K, V]) Delete(k K) bool {
	old, ok := t.rows[k]
	if !ok {
		return false
	}
	delete(t.rows, k)
	t.record(k, &old, nil)
	return true
}

func (t *Table[K, V]) record(k K, before, after *V) {
	if t.journal == nil {
		return
	}
	locate := t.locate
	change := Change{
		Entity: t.entity,
		Key:    fmt.Sprint(k),
		revert: func(s *State) error {
			tbl := locate(s)
			current, exists := tbl.rows[k]
			if after == nil {
				if exists {
					return ErrStaleChange
				}
			} else if !exists || !tbl.same(current, *after) {
				return ErrStaleChange
			}
			if before == nil {
				tbl.Delete(k)
			} else {
				tbl.Put(k, *before)
			}
			return nil
		},
	}
	if before != nil {
		change.Before = *before
	}
	if after != nil {
		change.After = *after
	}
	t.journal.changes = append(t.journal.changes, change)
}
