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
	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

// Merge is the combinator on two evaluated terms under mode. t1 and t2
// must already be forced to head-normal form by the caller; Merge never
// forces anything itself.
func Merge(t1, t2 value.Closure, posOp term.Position, mode Mode, c *cache.Cache, stack *diag.CallStack, opts Options) (value.Closure, error) {
	// Contract-mode failure on non-record: the contract (t2) is a
	// record but the checked value (t1) is not.
	if mode.IsContract() {
		if _, t2IsRecord := t2.Body.(value.Record); t2IsRecord {
			if _, t1IsRecord := t1.Body.(value.Record); !t1IsRecord {
				return value.Closure{}, &diag.BlameError{
					Label:        mode.Label(),
					EvaluatedArg: t1.Body,
					CallStack:    stack.Clone(),
				}
			}
		}
	}

	if result, ok, err := mergeAnnotated(t1, t2, posOp, mode, c, stack, opts); ok || err != nil {
		return result, err
	}

	r1, r1IsRecord := t1.Body.(value.Record)
	r2, r2IsRecord := t2.Body.(value.Record)
	if r1IsRecord && r2IsRecord {
		return mergeRecords(r1, t1.Env, r2, t2.Env, posOp, mode, c, stack, opts)
	}

	return mergeAtomic(t1, t2, posOp, opts)
}

// mergeAtomic implements the non-record cases: equal variants combine
// iff their payloads match (Number compared with
// opts.NumericEpsilon); two non-empty arrays are NotImplemented;
// anything else is IncompatibleArgs.
func mergeAtomic(t1, t2 value.Closure, posOp term.Position, opts Options) (value.Closure, error) {
	if t1.Body.Kind() != t2.Body.Kind() {
		return value.Closure{}, &diag.IncompatibleArgsError{T1: t1.Body, T2: t2.Body, PosOp: posOp}
	}

	switch v1 := t1.Body.(type) {
	case value.Null:
		return value.Closure{Body: value.Null{Position: posOp}, Env: t1.Env}, nil
	case value.Array:
		v2 := t2.Body.(value.Array)
		if len(v1.Elements) == 0 && len(v2.Elements) == 0 {
			return value.Closure{Body: value.Array{Position: posOp}, Env: t1.Env}, nil
		}
		return value.Closure{}, &diag.NotImplementedError{What: "merging non-empty arrays", Pos: posOp}
	default:
		if !value.Equal(t1.Body, t2.Body, opts.NumericEpsilon) {
			return value.Closure{}, &diag.IncompatibleArgsError{T1: t1.Body, T2: t2.Body, PosOp: posOp}
		}
		return value.Closure{Body: withPos(t1.Body, posOp), Env: t1.Env}, nil
	}
}

// withPos returns a copy of v repositioned at pos, for the atomic
// variants mergeAtomic can return.
func withPos(v term.Term, pos term.Position) term.Term {
	switch tv := v.(type) {
	case value.Bool:
		tv.Position = pos
		return tv
	case value.Number:
		tv.Position = pos
		return tv
	case value.String:
		tv.Position = pos
		return tv
	case value.Label:
		tv.Position = pos
		return tv
	case value.Enum:
		tv.Position = pos
		return tv
	default:
		return v
	}
}
