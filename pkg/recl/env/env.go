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

// Package env implements the evaluator's environment: an immutable-ish
// frame-chain mapping identifiers to cache indices.
//
// Frames are never mutated after Insert returns; callers share frames by
// holding a pointer to them; Go's GC plays the role that explicit
// reference counting would play in a language without one.
package env

// Index identifies an entry in the recursive-value cache. It is opaque
// outside the cache package; env only needs it to be a comparable value
// it can store and hand back.
type Index uint32

// Env is a persistent frame-chain environment. The zero value is a valid
// empty environment.
//
// A frame is either a single binding map (installed by Insert/InsertAll)
// or a whole extendOf environment consed on top of parent (installed by
// Extend). Keeping the two shapes distinct lets Extend graft an entire
// environment in O(1) without flattening it into parent's binding maps.
type Env struct {
	parent   *Env
	bindings map[string]Index
	extendOf *Env
}

// Empty returns a fresh, empty environment.
func Empty() *Env {
	return &Env{}
}

// Lookup resolves id to a cache index, searching this frame and then
// enclosing frames. The second result is false if id is unbound.
func (e *Env) Lookup(id string) (Index, bool) {
	for f := e; f != nil; f = f.parent {
		if f.extendOf != nil {
			if idx, ok := f.extendOf.Lookup(id); ok {
				return idx, true
			}
		}
		if idx, ok := f.bindings[id]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Insert returns a new environment that shadows any existing binding of
// id with idx. e itself is unmodified.
func (e *Env) Insert(id string, idx Index) *Env {
	return &Env{
		parent:   e,
		bindings: map[string]Index{id: idx},
	}
}

// InsertAll is like Insert for a batch of bindings installed as a single
// new frame. All entries are visible simultaneously; there is no
// ordering dependency between them.
func (e *Env) InsertAll(bindings map[string]Index) *Env {
	if len(bindings) == 0 {
		return e
	}
	frame := make(map[string]Index, len(bindings))
	for id, idx := range bindings {
		frame[id] = idx
	}
	return &Env{parent: e, bindings: frame}
}

// Extend conses all of other's frames on top of e as a single logical
// extension: identifiers bound in other shadow identifiers bound in e.
func (e *Env) Extend(other *Env) *Env {
	if other == nil {
		return e
	}
	return &Env{parent: e, extendOf: other}
}

// Iter calls f for every (identifier, index) binding visible from e,
// innermost frame first. A shadowed binding is visited only once, for
// its innermost (winning) occurrence.
func (e *Env) Iter(f func(string, Index)) {
	seen := make(map[string]bool)
	for fr := e; fr != nil; fr = fr.parent {
		if fr.extendOf != nil {
			fr.extendOf.Iter(func(id string, idx Index) {
				if !seen[id] {
					seen[id] = true
					f(id, idx)
				}
			})
		}
		for id, idx := range fr.bindings {
			if !seen[id] {
				seen[id] = true
				f(id, idx)
			}
		}
	}
}
