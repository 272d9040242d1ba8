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
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/ident"
	"github.com/recl-lang/recl/pkg/recl/term"
)

// RevertClosurize is applied to a field taken unchanged from one side of
// a merge — the "only one side present" and "higher priority wins"
// cases. For the field's value and each pending contract, if the
// enclosed term is a variable referencing a cache entry, it is
// saturated against siblings (the current index of every other field of
// the record being built, keyed by field name) and rebound to a fresh
// identifier in bindEnv. Non-variable (constant) terms pass through
// untouched.
//
// siblings is required here even for a field carried through unchanged:
// such a field must still observe overrides made to its siblings (a
// field `b = a + 1` kept from the left side must see a higher-priority
// `a` contributed by the right side), which is exactly what Saturate,
// not a bare revert, provides.
func RevertClosurize(f Field, c *cache.Cache, bindEnv *env.Env, sourceEnv *env.Env, siblings map[string]env.Index, ids *ident.Source) (Field, *env.Env, error) {
	newValue, bindEnv, err := SaturateTerm(f.Value, c, bindEnv, sourceEnv, siblings, ids)
	if err != nil {
		return Field{}, bindEnv, err
	}

	newPCs, bindEnv, err := RevertClosurizeContracts(f.PendingContracts, c, bindEnv, sourceEnv, siblings, ids)
	if err != nil {
		return Field{}, bindEnv, err
	}

	nf := f
	nf.Value = newValue
	nf.PendingContracts = newPCs
	return nf, bindEnv, nil
}

// RevertClosurizeContracts applies SaturateTerm to a bare slice of
// pending contracts, for callers that need it independent of a whole
// Field.
func RevertClosurizeContracts(pcs []PendingContract, c *cache.Cache, bindEnv *env.Env, sourceEnv *env.Env, siblings map[string]env.Index, ids *ident.Source) ([]PendingContract, *env.Env, error) {
	out := make([]PendingContract, len(pcs))
	for i, pc := range pcs {
		nt, nextEnv, err := SaturateTerm(pc.Term, c, bindEnv, sourceEnv, siblings, ids)
		if err != nil {
			return nil, bindEnv, err
		}
		bindEnv = nextEnv
		out[i] = PendingContract{Label: pc.Label, Term: nt}
	}
	return out, bindEnv, nil
}

// SaturateTerm is the leaf operation shared by RevertClosurize and
// fieldsMergeClosurize: a constant term passes through unchanged (the
// "zero dependencies" special case applies equally here); a variable is
// resolved through sourceEnv, saturated in the cache against siblings,
// and rebound to a fresh name in bindEnv.
func SaturateTerm(t term.Term, c *cache.Cache, bindEnv *env.Env, sourceEnv *env.Env, siblings map[string]env.Index, ids *ident.Source) (term.Term, *env.Env, error) {
	if t == nil {
		return nil, bindEnv, nil
	}
	v, ok := t.(term.Var)
	if !ok {
		return t, bindEnv, nil
	}

	idx, ok := sourceEnv.Lookup(v.Name)
	if !ok {
		return nil, bindEnv, &diag.UnboundIdentifierError{Name: v.Name, Pos: v.Position}
	}
	saturated, err := c.Saturate(idx, siblings)
	if err != nil {
		return nil, bindEnv, err
	}
	fresh := ids.Fresh().String()
	return term.Var{Position: v.Position, Name: fresh}, bindEnv.Insert(fresh, saturated), nil
}
