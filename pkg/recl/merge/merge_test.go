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

package merge

import (
	"errors"
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

func closureOf(v term.Term) value.Closure { return value.Closure{Body: v, Env: env.Empty()} }

func TestMergeAtomicCases(t *testing.T) {
	c := cache.New()
	opts := DefaultOptions()

	t.Run("null & null", func(t *testing.T) {
		got, err := Merge(closureOf(value.Null{}), closureOf(value.Null{}), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Body.Kind() != term.KindNull {
			t.Fatalf("expected Null, got %v", got.Body.Kind())
		}
	})

	t.Run("bool mismatch is incompatible", func(t *testing.T) {
		_, err := Merge(closureOf(value.Bool{Val: true}), closureOf(value.Bool{Val: false}), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if _, ok := err.(*diag.IncompatibleArgsError); !ok {
			t.Fatalf("expected IncompatibleArgsError, got %v (%T)", err, err)
		}
	})

	t.Run("number within epsilon combines", func(t *testing.T) {
		got, err := Merge(closureOf(value.Number{Val: 1.0}), closureOf(value.Number{Val: 1.0 + 1e-12}), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Body.(value.Number).Val != 1.0 {
			t.Fatalf("expected 1.0, got %v", got.Body.(value.Number).Val)
		}
	})

	t.Run("number outside epsilon is incompatible", func(t *testing.T) {
		_, err := Merge(closureOf(value.Number{Val: 1}), closureOf(value.Number{Val: 10}), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if _, ok := err.(*diag.IncompatibleArgsError); !ok {
			t.Fatalf("expected IncompatibleArgsError, got %v (%T)", err, err)
		}
	})

	t.Run("empty arrays combine", func(t *testing.T) {
		got, err := Merge(closureOf(value.Array{}), closureOf(value.Array{}), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Body.(value.Array).Elements) != 0 {
			t.Fatalf("expected empty array")
		}
	})

	t.Run("non-empty arrays are not implemented", func(t *testing.T) {
		arr := value.Array{Elements: []value.Closure{{Body: value.Number{Val: 1}}}}
		_, err := Merge(closureOf(arr), closureOf(arr), term.Position{}, Standard(), c, &diag.CallStack{}, opts)
		if _, ok := err.(*diag.NotImplementedError); !ok {
			t.Fatalf("expected NotImplementedError, got %v (%T)", err, err)
		}
	})
}

// buildLiteralRecord constructs a one-level record whose fields are all
// plain literals (each hoisted into its own Standard cache entry, as a
// real recursive record construction would do), with the given
// priorities.
func buildLiteralRecord(t *testing.T, c *cache.Cache, open bool, fields map[string]term.Term, prios map[string]field.Priority) (value.Record, *env.Env) {
	t.Helper()
	e := env.Empty()
	data := value.RecordData{Fields: map[string]*field.Field{}, Attrs: value.RecordAttrs{Open: open}}
	for name, v := range fields {
		idx := c.Add(v, env.Empty(), cache.KindOther, cache.Standard())
		e = e.Insert(name, idx)
		p := field.DefaultPriority()
		if pr, ok := prios[name]; ok {
			p = pr
		}
		data.Fields[name] = &field.Field{Value: term.Var{Name: name}, Metadata: field.FieldMetadata{Priority: p}}
		data.Keys = append(data.Keys, name)
	}
	return value.Record{Data: data}, e
}

func TestMergeRecordsDisjointFieldsUnion(t *testing.T) {
	c := cache.New()
	r1, e1 := buildLiteralRecord(t, c, true, map[string]term.Term{"a": value.Number{Val: 1}}, nil)
	r2, e2 := buildLiteralRecord(t, c, true, map[string]term.Term{"b": value.Number{Val: 2}}, nil)

	got, err := Merge(value.Closure{Body: r1, Env: e1}, value.Closure{Body: r2, Env: e2}, term.Position{}, Standard(), c, &diag.CallStack{}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := got.Body.(value.Record)
	if len(rec.Data.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(rec.Data.Fields))
	}
	if _, ok := rec.Data.Fields["a"]; !ok {
		t.Fatalf("missing field a")
	}
	if _, ok := rec.Data.Fields["b"]; !ok {
		t.Fatalf("missing field b")
	}
}

func TestMergeRecordsSealedTailRejected(t *testing.T) {
	c := cache.New()
	r1, e1 := buildLiteralRecord(t, c, true, map[string]term.Term{"a": value.Number{Val: 1}}, nil)
	r1.Data.SealedTail = &value.SealedTail{Label: diag.Label{}, EvaluatedArg: value.Number{Val: 1}}
	r2, e2 := buildLiteralRecord(t, c, true, map[string]term.Term{"b": value.Number{Val: 2}}, nil)

	_, err := Merge(value.Closure{Body: r1, Env: e1}, value.Closure{Body: r2, Env: e2}, term.Position{}, Standard(), c, &diag.CallStack{}, DefaultOptions())
	if _, ok := err.(*diag.IllegalPolymorphicTailAccessError); !ok {
		t.Fatalf("expected IllegalPolymorphicTailAccessError, got %v (%T)", err, err)
	}
}

func TestMergeRecordsContractModeRejectsExtraFields(t *testing.T) {
	c := cache.New()
	checked, e1 := buildLiteralRecord(t, c, true, map[string]term.Term{"x": value.Number{Val: 1}, "y": value.Number{Val: 2}}, nil)
	contract, e2 := buildLiteralRecord(t, c, false, map[string]term.Term{"x": value.Number{Val: 1}}, nil)

	_, err := Merge(value.Closure{Body: checked, Env: e1}, value.Closure{Body: contract, Env: e2}, term.Position{}, Contract(diag.Label{}), c, &diag.CallStack{}, DefaultOptions())
	blame, ok := err.(*diag.BlameError)
	if !ok {
		t.Fatalf("expected BlameError, got %v (%T)", err, err)
	}
	msg := blame.Label.DiagnosticMessage
	msgErr := errors.New(msg)
	if diff := errdiff.Substring(msgErr, "extra field"); diff != "" {
		t.Fatalf("%s", diff)
	}
	if diff := errdiff.Substring(msgErr, "`y`"); diff != "" {
		t.Fatalf("%s", diff)
	}
	if len(blame.Label.DiagnosticNotes) != 2 {
		t.Fatalf("expected two diagnostic notes, got %d", len(blame.Label.DiagnosticNotes))
	}
}

func TestMergeRecordsContractModeAcceptsOpen(t *testing.T) {
	c := cache.New()
	checked, e1 := buildLiteralRecord(t, c, true, map[string]term.Term{"x": value.Number{Val: 1}, "y": value.Number{Val: 2}}, nil)
	contract, e2 := buildLiteralRecord(t, c, true, map[string]term.Term{"x": value.Number{Val: 1}}, nil)

	_, err := Merge(value.Closure{Body: checked, Env: e1}, value.Closure{Body: contract, Env: e2}, term.Position{}, Contract(diag.Label{}), c, &diag.CallStack{}, DefaultOptions())
	if err != nil {
		t.Fatalf("open contract should accept extra fields, got %v", err)
	}
}

func TestMergeRecordsPriorityDominance(t *testing.T) {
	c := cache.New()
	r1, e1 := buildLiteralRecord(t, c, true, map[string]term.Term{"a": value.Number{Val: 1}}, map[string]field.Priority{"a": field.Neutral(0)})
	r2, e2 := buildLiteralRecord(t, c, true, map[string]term.Term{"a": value.Number{Val: 10}}, map[string]field.Priority{"a": field.Top()})

	got, err := Merge(value.Closure{Body: r1, Env: e1}, value.Closure{Body: r2, Env: e2}, term.Position{}, Standard(), c, &diag.CallStack{}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := got.Body.(value.Record)
	af := rec.Data.Fields["a"]
	if !af.Metadata.Priority.Equal(field.Top()) {
		t.Fatalf("expected Top priority to survive, got %v", af.Metadata.Priority)
	}
	v := af.Value.(term.Var)
	idx, ok := got.Env.Lookup(v.Name)
	if !ok {
		t.Fatalf("merged a's value not bound in result env")
	}
	entry, _ := c.Get(idx)
	if entry.Body != (value.Number{Val: 10}) {
		t.Fatalf("expected a's winning (ovr) body to survive, got %v", entry.Body)
	}
}

// TestMergeRecordsOverrideVisibility exercises the override-visibility
// invariant: rec = {a=1, b=a+1}; ovr = {a=10 [Top priority]}; merging them must
// make "b" (left-only, carried through RevertClosurize) resolve its "a"
// dependency against ovr's Top-priority a, not rec's own a.
func TestMergeRecordsOverrideVisibility(t *testing.T) {
	c := cache.New()

	aRecIdx := c.Add(term.Var{Name: "lit1"}, env.Empty(), cache.KindOther, cache.Standard())
	bIdx := c.Add(term.Var{Name: "a"}, env.Empty().Insert("a", aRecIdx), cache.KindRecord,
		cache.Revertible(map[string]bool{"a": true}))
	recEnv := env.Empty().Insert("a", aRecIdx).Insert("b", bIdx)
	rec := value.Record{Data: value.RecordData{
		Fields: map[string]*field.Field{
			"a": {Value: term.Var{Name: "a"}, Metadata: field.FieldMetadata{Priority: field.Neutral(0)}},
			"b": {Value: term.Var{Name: "b"}, Metadata: field.FieldMetadata{Priority: field.Neutral(0)}},
		},
		Keys: []string{"a", "b"},
	}}

	aOvrIdx := c.Add(term.Var{Name: "lit10"}, env.Empty(), cache.KindOther, cache.Standard())
	ovrEnv := env.Empty().Insert("a", aOvrIdx)
	ovr := value.Record{Data: value.RecordData{
		Fields: map[string]*field.Field{
			"a": {Value: term.Var{Name: "a"}, Metadata: field.FieldMetadata{Priority: field.Top()}},
		},
		Keys: []string{"a"},
	}}

	got, err := Merge(value.Closure{Body: rec, Env: recEnv}, value.Closure{Body: ovr, Env: ovrEnv}, term.Position{}, Standard(), c, &diag.CallStack{}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mergedRec := got.Body.(value.Record)

	bVar := mergedRec.Data.Fields["b"].Value.(term.Var)
	bResolvedIdx, ok := got.Env.Lookup(bVar.Name)
	if !ok {
		t.Fatalf("merged b not bound in result env")
	}
	bEntry, _ := c.Get(bResolvedIdx)
	aDepIdx, ok := bEntry.Env.Lookup("a")
	if !ok {
		t.Fatalf("merged b's closure env should still bind \"a\"")
	}

	aVar := mergedRec.Data.Fields["a"].Value.(term.Var)
	aResolvedIdx, ok := got.Env.Lookup(aVar.Name)
	if !ok {
		t.Fatalf("merged a not bound in result env")
	}
	if aDepIdx != aResolvedIdx {
		t.Fatalf("b should see the merged record's own \"a\" slot (%d), got %d", aResolvedIdx, aDepIdx)
	}
	aEntry, _ := c.Get(aResolvedIdx)
	if aEntry.Body != (term.Var{Name: "lit10"}) {
		t.Fatalf("expected ovr's winning a body to have been installed, got %v", aEntry.Body)
	}
}

func TestMergeRecordsIdempotent(t *testing.T) {
	c := cache.New()
	r, e := buildLiteralRecord(t, c, true, map[string]term.Term{"a": value.Number{Val: 1}, "b": value.Number{Val: 2}}, nil)

	got, err := Merge(value.Closure{Body: r, Env: e}, value.Closure{Body: r, Env: e}, term.Position{}, Standard(), c, &diag.CallStack{}, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := got.Body.(value.Record)
	if len(rec.Data.Fields) != 2 {
		t.Fatalf("expected the same two fields after self-merge, got %d", len(rec.Data.Fields))
	}
	for name, f := range rec.Data.Fields {
		if !f.Metadata.Priority.Equal(field.DefaultPriority()) {
			t.Fatalf("field %s: priority should be preserved, got %v", name, f.Metadata.Priority)
		}
	}
}
