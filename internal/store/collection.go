// Package store holds the canonical in-memory collections of platform
// entities plus their request lifecycle flags. Collections are mutated
// only through store transition methods, never by view code.
package store

import "sync"

// Snapshot is a read-only copy of a collection's render state.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

// collection is the shared state machine behind every entity store.
//
// Operations are stamped with a monotonic sequence. Wholesale list
// replacements from an older fetch are discarded once a newer operation
// has settled, so a slow fetch-all can not resurrect a deleted item.
// Point mutations always apply.
type collection[T any] struct {
	mu        sync.RWMutex
	items     []T
	selected  *T
	loading   bool
	errMsg    string
	fieldErrs map[string][]string

	nextSeq    uint64
	settledSeq uint64

	idOf func(T) int64
}

func newCollection[T any](idOf func(T) int64) *collection[T] {
	return &collection[T]{idOf: idOf}
}

// begin marks a fetch pending: loading on, previous error cleared.
func (c *collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	c.loading = true
	c.errMsg = ""
	return c.nextSeq
}

// beginSelect additionally clears the singular slot so a stale entity is
// never shown while its replacement loads.
func (c *collection[T]) beginSelect() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	c.loading = true
	c.errMsg = ""
	c.selected = nil
	return c.nextSeq
}

// claimSeq stamps a mutation without touching the loading flag; create,
// update and delete drive their own in-flight state at the form layer.
func (c *collection[T]) claimSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

func (c *collection[T]) markSettled(seq uint64) bool {
	if seq > c.settledSeq {
		c.settledSeq = seq
		return true
	}
	return false
}

func (c *collection[T]) settleList(seq uint64, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.markSettled(seq) {
		c.items = items
	}
}

func (c *collection[T]) settleSelected(seq uint64, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if c.markSettled(seq) {
		c.selected = &item
	}
}

// settleErr records a rejection. Items stay as they were: stale but present.
func (c *collection[T]) settleErr(seq uint64, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.errMsg = message
	c.markSettled(seq)
}

func (c *collection[T]) settleAppend(seq uint64, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markSettled(seq)
	c.items = append(c.items, item)
}

// settleReplace swaps the matching item in place, preserving its index.
// An unmatched id is a silent no-op.
func (c *collection[T]) settleReplace(seq uint64, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markSettled(seq)
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
}

func (c *collection[T]) settleRemove(seq uint64, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markSettled(seq)
	kept := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *collection[T]) setFieldErrors(messages map[string][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fieldErrs = messages
}

func (c *collection[T]) clearFieldErrors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fieldErrs = nil
}

// Snapshot returns a copy of the list state for rendering.
func (c *collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{Items: items, Loading: c.loading, Err: c.errMsg}
}

// Selected returns the singular slot, if populated.
func (c *collection[T]) Selected() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

// FieldErrors returns the field→messages mapping from the last rejected
// create or update, if the backend supplied structured detail.
func (c *collection[T]) FieldErrors() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fieldErrs == nil {
		return nil
	}
	out := make(map[string][]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		out[k] = append([]string(nil), v...)
	}
	return out
}
