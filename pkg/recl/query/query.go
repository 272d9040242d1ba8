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

// Package query contains high-level helpers for reading a merged
// value.Record tree: dotted-path lookup, insertion-order field listing, and a
// depth-first walk. None of this is merge itself — it exists for callers
// (cmd/recl, tests, a future language server) that want to inspect the
// record merge produced without re-implementing path-walking each time.
package query

import (
	"fmt"
	"strings"

	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

// Resolved is a field's value after its binding has been chased through
// the environment and cache to the underlying term — which may itself be
// another value.Record, letting callers descend further.
type Resolved struct {
	Term term.Term
	Env  *env.Env
}

// Force resolves t (typically a field's Value, a term.Var) against e by
// looking it up in e and then in c, returning the cache entry's body and
// its own environment so the caller can continue resolving. If t is not
// a term.Var, Force returns it unchanged — not every field value is a
// cache reference; a literal term resolves to itself.
func Force(t term.Term, e *env.Env, c *cache.Cache) (Resolved, error) {
	v, ok := t.(term.Var)
	if !ok {
		return Resolved{Term: t, Env: e}, nil
	}
	idx, ok := e.Lookup(v.Name)
	if !ok {
		return Resolved{}, fmt.Errorf("query: unbound identifier %q", v.Name)
	}
	entry, ok := c.Get(idx)
	if !ok {
		return Resolved{}, fmt.Errorf("query: dangling cache index for %q", v.Name)
	}
	return Resolved{Term: entry.Body, Env: entry.Env}, nil
}

// Find resolves a dot-separated path (e.g. "server.listen.port") against
// rec, forcing each field's value through c as it descends. An empty
// path segment (from a leading, trailing, or doubled '.') is rejected
// rather than silently skipped, since a record field named "" is never
// valid in this language.
func Find(rec value.Record, e *env.Env, c *cache.Cache, path string) (Resolved, error) {
	if path == "" {
		return Resolved{Term: rec, Env: e}, nil
	}
	cur := Resolved{Term: rec, Env: e}
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return Resolved{}, fmt.Errorf("query: empty path segment in %q", path)
		}
		r, ok := cur.Term.(value.Record)
		if !ok {
			return Resolved{}, fmt.Errorf("query: %q is not a record, cannot look up field %q", path, part)
		}
		f, ok := r.Data.Fields[part]
		if !ok {
			return Resolved{}, fmt.Errorf("query: no field %q in path %q", part, path)
		}
		resolved, err := Force(f.Value, cur.Env, c)
		if err != nil {
			return Resolved{}, fmt.Errorf("query: resolving %q: %w", path, err)
		}
		cur = resolved
	}
	return cur, nil
}

// List returns rec's field names in insertion order, mirroring
// value.RecordData.Keys directly rather than re-sorting it — the data
// model already pins iteration order to insertion order, not lexical
// order, and callers that want sorted output can sort List's result
// themselves.
func List(rec value.Record) []string {
	out := make([]string, len(rec.Data.Keys))
	copy(out, rec.Data.Keys)
	return out
}

// WalkFunc is called once per field Walk visits, with the field's full
// dotted path and its metadata. Returning an error stops the walk and
// propagates the error to Walk's caller.
type WalkFunc func(path string, f *field.Field) error

// Walk performs a depth-first traversal of rec, forcing each field's
// value through c to decide whether to recurse into it as a nested
// record. fn is called for every field, including ones whose value is
// itself a record (it is called for the record field itself, then again
// for each of its children).
func Walk(rec value.Record, e *env.Env, c *cache.Cache, fn WalkFunc) error {
	return walk(rec, e, c, "", fn)
}

func walk(rec value.Record, e *env.Env, c *cache.Cache, prefix string, fn WalkFunc) error {
	for _, name := range rec.Data.Keys {
		f := rec.Data.Fields[name]
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if err := fn(path, f); err != nil {
			return err
		}
		resolved, err := Force(f.Value, e, c)
		if err != nil {
			return fmt.Errorf("query: walking %q: %w", path, err)
		}
		if child, ok := resolved.Term.(value.Record); ok {
			if err := walk(child, resolved.Env, c, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
