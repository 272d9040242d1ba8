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

package field

import (
	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/ident"
	"github.com/recl-lang/recl/pkg/recl/term"
)

// MergeFields combines the two definitions of a field present in both
// operands of a record merge (the "center" fields shared by both
// sides), following the priority-selection table verbatim:
//
//   - both present, equal priority: recursively merge the two values
//     (fieldsMergeClosurize) and keep that priority;
//   - both present, one outranks the other: the higher-priority side's
//     value wins outright (RevertClosurize of that side only);
//   - only one side present: that side wins;
//   - neither present: the merged field has no value and DefaultPriority.
//
// Pending contracts are concatenated, side 1 first. Annotations merge
// with f1's declared type demoted into its own contract list ahead of
// f2's contracts — a field that already carries an explicit type still
// has it checked once the two records combine. Metadata merges as: doc
// first-wins, optional is the conjunction, not-exported is the
// disjunction.
func MergeFields(c *cache.Cache, f1 Field, env1 *env.Env, f2 Field, env2 *env.Env, bindEnv *env.Env, siblings map[string]env.Index, ids *ident.Source) (Field, *env.Env, error) {
	m1, m2 := f1.Metadata, f2.Metadata

	var value term.Term
	var prio Priority
	var err error

	switch {
	case f1.Value != nil && f2.Value != nil:
		switch {
		case m1.Priority.Equal(m2.Priority):
			value, bindEnv, err = fieldsMergeClosurize(c, bindEnv, f1.Value, env1, f2.Value, env2, siblings, ids)
			prio = m1.Priority
		case m1.Priority.Greater(m2.Priority):
			value, bindEnv, err = SaturateTerm(f1.Value, c, bindEnv, env1, siblings, ids)
			prio = m1.Priority
		default:
			value, bindEnv, err = SaturateTerm(f2.Value, c, bindEnv, env2, siblings, ids)
			prio = m2.Priority
		}
	case f1.Value != nil:
		value, bindEnv, err = SaturateTerm(f1.Value, c, bindEnv, env1, siblings, ids)
		prio = m1.Priority
	case f2.Value != nil:
		value, bindEnv, err = SaturateTerm(f2.Value, c, bindEnv, env2, siblings, ids)
		prio = m2.Priority
	default:
		prio = DefaultPriority()
	}
	if err != nil {
		return Field{}, bindEnv, err
	}

	pcs1, bindEnv, err := RevertClosurizeContracts(f1.PendingContracts, c, bindEnv, env1, siblings, ids)
	if err != nil {
		return Field{}, bindEnv, err
	}
	pcs2, bindEnv, err := RevertClosurizeContracts(f2.PendingContracts, c, bindEnv, env2, siblings, ids)
	if err != nil {
		return Field{}, bindEnv, err
	}
	pcs := append(pcs1, pcs2...)

	typ, contracts := mergeAnnotations(m1.Annotation, m2.Annotation)

	metadata := FieldMetadata{
		Doc:         mergeDoc(m1.Doc, m2.Doc),
		Annotation:  TypeAnnotation{Typ: typ, Contracts: contracts},
		Optional:    m1.Optional && m2.Optional,
		NotExported: m1.NotExported || m2.NotExported,
		Priority:    prio,
	}
	return Field{Value: value, Metadata: metadata, PendingContracts: pcs}, bindEnv, nil
}

// mergeAnnotations implements the "type demotion" rule: a field's own
// declared static type, if any, becomes an ordinary contract once it is
// combined with a second definition's annotation, since a merged field
// can no longer be said to have a single static type without rechecking
// both. The second side's type, if present and the first side had none,
// is kept as the merged type; if both sides declared one, it is demoted
// too, after the first.
func mergeAnnotations(a1, a2 TypeAnnotation) (*LabeledType, []LabeledType) {
	contracts := make([]LabeledType, 0, len(a1.Contracts)+len(a2.Contracts)+2)

	var typ *LabeledType
	switch {
	case a1.Typ == nil && a2.Typ == nil:
		typ = nil
	case a1.Typ == nil:
		typ = a2.Typ
	case a2.Typ == nil:
		contracts = append(contracts, *a1.Typ)
	default:
		contracts = append(contracts, *a1.Typ, *a2.Typ)
	}

	contracts = append(contracts, a1.Contracts...)
	contracts = append(contracts, a2.Contracts...)
	return typ, contracts
}

// mergeDoc keeps the first side's documentation string if present,
// falling back to the second's: first-wins matches the left-to-right
// reading order a merge's two operands are always given in.
func mergeDoc(d1, d2 *string) *string {
	if d1 != nil {
		return d1
	}
	return d2
}

// fieldsMergeClosurize recursively merges the two values of a field
// present, with equal priority, on both sides. It mirrors Nickel's own
// fields_merge_closurize: each operand is individually saturated against
// the shared siblings set (accumulating their fresh rebindings into a
// single localEnv rather than bindEnv, so that the resulting MergeApp
// term is self-contained and can be cached as its own revertible entry),
// the two saturated terms are wrapped in an unevaluated MergeApp, and
// that thunk is stored under a fresh identifier bound into bindEnv. The
// new entry's dependency set is the union of both original operands'
// declared dependencies, since forcing the merge can observe either
// side's siblings.
func fieldsMergeClosurize(c *cache.Cache, bindEnv *env.Env, t1 term.Term, env1 *env.Env, t2 term.Term, env2 *env.Env, siblings map[string]env.Index, ids *ident.Source) (term.Term, *env.Env, error) {
	deps1, err := depsOf(c, t1, env1)
	if err != nil {
		return nil, bindEnv, err
	}
	deps2, err := depsOf(c, t2, env2)
	if err != nil {
		return nil, bindEnv, err
	}
	combined := unionDeps(deps1, deps2)

	localEnv := env.Empty()
	sat1, localEnv, err := SaturateTerm(t1, c, localEnv, env1, siblings, ids)
	if err != nil {
		return nil, bindEnv, err
	}
	sat2, localEnv, err := SaturateTerm(t2, c, localEnv, env2, siblings, ids)
	if err != nil {
		return nil, bindEnv, err
	}

	body := term.MergeApp{Left: sat1, Right: sat2}
	idx := c.Add(body, localEnv, cache.KindRecord, cache.Revertible(combined))

	fresh := ids.Fresh().String()
	return term.Var{Name: fresh}, bindEnv.Insert(fresh, idx), nil
}

// depsOf returns the declared dependency set of t within e: empty for a
// constant term, the cache's recorded deps for a variable.
func depsOf(c *cache.Cache, t term.Term, e *env.Env) (map[string]bool, error) {
	v, ok := t.(term.Var)
	if !ok {
		return nil, nil
	}
	idx, ok := e.Lookup(v.Name)
	if !ok {
		return nil, nil
	}
	deps, _ := c.Deps(idx)
	return deps, nil
}

func unionDeps(a, b map[string]bool) map[string]bool {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]bool, len(a)+len(b))
	for d := range a {
		out[d] = true
	}
	for d := range b {
		out[d] = true
	}
	return out
}
