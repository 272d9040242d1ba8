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
	"fmt"
	"strings"

	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/ident"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

var fieldIDs = &ident.Source{}

// mergeRecords implements the record case of merge.
func mergeRecords(r1 value.Record, env1 *env.Env, r2 value.Record, env2 *env.Env, posOp term.Position, mode Mode, c *cache.Cache, stack *diag.CallStack, opts Options) (value.Closure, error) {
	if r1.Data.SealedTail != nil {
		return value.Closure{}, sealedTailError(r1.Data.SealedTail, stack)
	}
	if r2.Data.SealedTail != nil {
		return value.Closure{}, sealedTailError(r2.Data.SealedTail, stack)
	}

	in1 := keySet(r1.Data.Keys)
	in2 := keySet(r2.Data.Keys)

	var left, right, center []string
	for _, k := range r1.Data.Keys {
		if !in2[k] {
			left = append(left, k)
		}
	}
	for _, k := range r2.Data.Keys {
		if !in1[k] {
			right = append(right, k)
		}
	}
	for _, k := range r1.Data.Keys {
		if in2[k] {
			center = append(center, k)
		}
	}

	if mode.IsContract() && !r2.Data.Attrs.Open && len(left) > 0 {
		return value.Closure{}, extraFieldsError(left, mode.Label())
	}

	// outKeys is the deterministic processing (and output iteration)
	// order: r1's own order, followed by right's fields in r2's order.
	outKeys := append(append([]string{}, r1.Data.Keys...), right...)

	fieldIndex := make(map[string]env.Index, len(outKeys))
	for _, name := range outKeys {
		fieldIndex[name] = c.Reserve()
	}

	bindEnv := env.Empty()
	outFields := make(map[string]*field.Field, len(outKeys))
	leftSet, rightSet, centerSet := keySet(left), keySet(right), keySet(center)

	for _, name := range outKeys {
		var nf field.Field
		var err error
		switch {
		case centerSet[name]:
			f1 := r1.Data.Fields[name]
			f2 := r2.Data.Fields[name]
			nf, bindEnv, err = field.MergeFields(c, *f1, env1, *f2, env2, bindEnv, fieldIndex, fieldIDs)
		case leftSet[name]:
			f1 := r1.Data.Fields[name]
			nf, bindEnv, err = field.RevertClosurize(*f1, c, bindEnv, env1, fieldIndex, fieldIDs)
		case rightSet[name]:
			f2 := r2.Data.Fields[name]
			nf, bindEnv, err = field.RevertClosurize(*f2, c, bindEnv, env2, fieldIndex, fieldIDs)
		}
		if err != nil {
			return value.Closure{}, err
		}
		bindEnv = rehome(c, bindEnv, nf.Value, fieldIndex[name])
		outFields[name] = &nf
	}

	resultPos := posOp
	if mode.IsContract() {
		resultPos = r1.Position
	}

	rec := value.Record{
		Position: resultPos,
		Data: value.RecordData{
			Fields: outFields,
			Keys:   outKeys,
			Attrs:  mergeAttrs(r1.Data.Attrs, r2.Data.Attrs),
		},
	}
	return value.Closure{Body: rec, Env: bindEnv}, nil
}

// rehome moves the cache entry a just-produced field value points to
// into the record's pre-reserved slot for that field name, so that
// later fields (processed in the same pass, or a subsequent merge) can
// find it via fieldIndex regardless of when this field itself was
// processed. See DESIGN.md's "sibling-index reservation" note.
func rehome(c *cache.Cache, bindEnv *env.Env, v term.Term, target env.Index) *env.Env {
	vv, ok := v.(term.Var)
	if !ok {
		if v != nil {
			_ = c.Fill(target, v, env.Empty(), cache.KindOther, cache.Standard())
		}
		return bindEnv
	}
	idx, ok := bindEnv.Lookup(vv.Name)
	if !ok {
		return bindEnv
	}
	entry, ok := c.Get(idx)
	if !ok {
		return bindEnv
	}
	_ = c.Fill(target, entry.Body, entry.Env, entry.ValueKind, entry.Binding)
	return bindEnv.Insert(vv.Name, target)
}

func keySet(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// mergeAttrs combines record attributes: Open is the logical OR, the
// simplest monotone rule for any attribute that isn't otherwise pinned
// down.
func mergeAttrs(a1, a2 value.RecordAttrs) value.RecordAttrs {
	return value.RecordAttrs{Open: a1.Open || a2.Open}
}

func sealedTailError(tail *value.SealedTail, stack *diag.CallStack) error {
	label, _ := tail.Label.(diag.Label)
	return &diag.IllegalPolymorphicTailAccessError{
		Action:       diag.ActionMerge,
		Label:        label,
		EvaluatedArg: tail.EvaluatedArg,
		CallStack:    stack.Take(),
	}
}

// extraFieldsError builds the blame error for a closed-contract check:
// message "extra field(s) `a`, `b`" plus the misspelling and
// `, ..` hints, pluralized on whether there is exactly one extra field.
func extraFieldsError(extra []string, label diag.Label) error {
	quoted := make([]string, len(extra))
	for i, f := range extra {
		quoted[i] = fmt.Sprintf("`%s`", f)
	}
	plural := "s"
	if len(extra) == 1 {
		plural = ""
	}
	msg := fmt.Sprintf("extra field%s %s", plural, strings.Join(quoted, ", "))
	enriched := label.
		WithDiagnosticMessage(msg).
		WithDiagnosticNotes([]string{
			"Have you misspelled a field?",
			"Append `, ..` to accept extra fields.",
		})
	return &diag.BlameError{Label: enriched}
}
