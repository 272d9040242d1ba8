// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache implements the recursive-value cache: a content-addressed
// store of thunks with revertible entries and dependency sets. It is the
// data structure that makes recursive records see updated sibling values
// after a merge overrides one of them.
//
// The cache is a flat, append-only slice of entries indexed by
// env.Index. Reverting an entry never mutates it in place — it appends a
// fresh entry and returns its index — so any term still holding the old
// index keeps observing the old (pre-revert) thunk — a revertible entry
// always retains its original body.
package cache

import (
	"fmt"

	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/term"
)

// NumericEpsilon is the default tolerance the merge engine uses to
// decide whether two Number values are "the same". It lives here,
// rather than in package merge, purely
// so the two packages most likely to need a numeric tolerance constant
// — this one and merge's Options — share a single named source of
// truth; cache itself never compares numbers.
const NumericEpsilon = 1e-9

// ValueKind records what shape of thunk an entry holds. Saturate does
// not consult it: whether an entry is rewired is decided by its
// BindingType alone.
type ValueKind int

const (
	KindOther ValueKind = iota
	KindRecord
)

// BindingType is Standard or Revertible(deps).
type BindingType struct {
	revertible bool
	deps       map[string]bool
}

// Standard returns the non-revertible binding type: a thunk that never
// needs to be reverted because nothing it closes over can be overridden.
func Standard() BindingType {
	return BindingType{}
}

// Revertible returns a binding type that retains deps so a future
// revert can re-point the thunk's sibling references. If deps is empty,
// the binding type is optimised down to Standard: no reversion is ever
// needed for a dependency-free binding.
func Revertible(deps map[string]bool) BindingType {
	if len(deps) == 0 {
		return Standard()
	}
	cp := make(map[string]bool, len(deps))
	for d := range deps {
		cp[d] = true
	}
	return BindingType{revertible: true, deps: cp}
}

// IsRevertible reports whether b carries a dependency set.
func (b BindingType) IsRevertible() bool { return b.revertible }

// Deps returns the dependency set of a revertible binding type, or nil,
// false for Standard.
func (b BindingType) Deps() (map[string]bool, bool) {
	if !b.revertible {
		return nil, false
	}
	return b.deps, true
}

// Entry is a single recursive-record thunk: a term paired with its
// defining environment, plus enough bookkeeping to support revert.
type Entry struct {
	Body         term.Term
	Env          *env.Env
	ValueKind    ValueKind
	Binding      BindingType
	OriginalBody term.Term
	// Current caches the result of forcing Body to head-normal form.
	// It is nil until the evaluator (outside this package's scope)
	// populates it, and is always cleared again by Revert.
	Current term.Term
}

// Cache is a content-addressed store of Entry values. The zero value is
// ready to use. A Cache is owned exclusively by one evaluator at a
// time: it is never safe to share across goroutines without external
// synchronization.
type Cache struct {
	entries []Entry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// Add stores a thunk and returns the index it was stored under.
func (c *Cache) Add(body term.Term, e *env.Env, vk ValueKind, bt BindingType) env.Index {
	c.entries = append(c.entries, Entry{
		Body:         body,
		Env:          e,
		ValueKind:    vk,
		Binding:      bt,
		OriginalBody: body,
	})
	return env.Index(len(c.entries) - 1)
}

// Reserve allocates an empty entry and returns its index before its
// content is known. The merge engine uses this to assign every field of
// a record being merged its final index up front, so that fields
// processed earlier in the record can still be saturated against
// siblings processed later — the cache equivalent of knot-tying a
// mutually-recursive binding group. Fill must be called on the returned
// index before anything reads it.
func (c *Cache) Reserve() env.Index {
	c.entries = append(c.entries, Entry{})
	return env.Index(len(c.entries) - 1)
}

// Fill sets the content of a previously Reserved entry.
func (c *Cache) Fill(idx env.Index, body term.Term, e *env.Env, vk ValueKind, bt BindingType) error {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return fmt.Errorf("cache: fill of invalid index %d", idx)
	}
	c.entries[idx] = Entry{
		Body:         body,
		Env:          e,
		ValueKind:    vk,
		Binding:      bt,
		OriginalBody: body,
	}
	return nil
}

// Get returns read-only access to the entry at idx.
func (c *Cache) Get(idx env.Index) (Entry, bool) {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// SetCurrent records the evaluated head-normal form of the entry at idx.
// It is the evaluator's hook into the cache, not used by the merge
// engine itself, but is needed for Revert to have something meaningful
// to clear.
func (c *Cache) SetCurrent(idx env.Index, v term.Term) error {
	if int(idx) < 0 || int(idx) >= len(c.entries) {
		return fmt.Errorf("cache: invalid index %d", idx)
	}
	c.entries[idx].Current = v
	return nil
}

// Revert allocates a fresh index whose body is the original_body of the
// entry at idx and whose current value is cleared. The new entry keeps
// the same binding type (and hence the same deps) as the source.
func (c *Cache) Revert(idx env.Index) (env.Index, error) {
	e, ok := c.Get(idx)
	if !ok {
		return 0, fmt.Errorf("cache: revert of invalid index %d", idx)
	}
	c.entries = append(c.entries, Entry{
		Body:         e.OriginalBody,
		Env:          e.Env,
		ValueKind:    e.ValueKind,
		Binding:      e.Binding,
		OriginalBody: e.OriginalBody,
	})
	return env.Index(len(c.entries) - 1), nil
}

// Deps returns the declared dependency set for a revertible entry, or
// (nil, false) for a standard one.
func (c *Cache) Deps(idx env.Index) (map[string]bool, bool) {
	e, ok := c.Get(idx)
	if !ok {
		return nil, false
	}
	return e.Binding.Deps()
}

// Saturate is the central override-propagation operation. Given an
// index and the set of sibling field names currently
// visible in the enclosing merged record (siblings, mapping field name
// to its current index), it returns a term that, once evaluated, reads
// the *current* siblings rather than the ones in scope when the entry
// was first created.
//
// Standard entries have no recursive dependencies to rewire and are
// returned as a plain reference to idx. Revertible entries are reverted
// (so nothing from before the merge leaks through Current) and rebound:
// for every dependency the entry declares that is also a current
// sibling, the reverted entry's local environment is updated to point
// at that sibling's fresh index. Dependencies outside the declared set,
// or outside the current sibling set, are left untouched: fields
// outside the declared dependency set are never propagated.
func (c *Cache) Saturate(idx env.Index, siblings map[string]env.Index) (env.Index, error) {
	e, ok := c.Get(idx)
	if !ok {
		return 0, fmt.Errorf("cache: saturate of invalid index %d", idx)
	}
	deps, isRevertible := e.Binding.Deps()
	if !isRevertible {
		return idx, nil
	}

	reverted, err := c.Revert(idx)
	if err != nil {
		return 0, err
	}
	rebind := make(map[string]env.Index, len(deps))
	for dep := range deps {
		if newIdx, ok := siblings[dep]; ok {
			rebind[dep] = newIdx
		}
	}
	if len(rebind) > 0 {
		re, _ := c.Get(reverted)
		re.Env = re.Env.InsertAll(rebind)
		c.entries[reverted] = re
	}
	return reverted, nil
}
