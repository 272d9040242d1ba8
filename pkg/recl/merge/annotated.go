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

// mergeAnnotated implements two enriched-value interactions:
//
//   - a Default-tagged value merged with a plain (non-Annotated) value
//     is overridden outright — the plain value wins, the default is
//     discarded;
//   - two Default-tagged values merge their inner values (recursively,
//     through the same Merge entry point) and stay Default.
//
// ok is false when neither of these shapes applies, telling the caller
// to fall through to the generic atomic/record dispatch.
func mergeAnnotated(t1, t2 value.Closure, posOp term.Position, mode Mode, c *cache.Cache, stack *diag.CallStack, opts Options) (value.Closure, bool, error) {
	a1, a1ok := t1.Body.(value.Annotated)
	a2, a2ok := t2.Body.(value.Annotated)

	switch {
	case a1ok && a1.AnnKind == value.KindDefault && a2ok && a2.AnnKind == value.KindDefault:
		inner, err := Merge(
			value.Closure{Body: a1.Inner, Env: t1.Env},
			value.Closure{Body: a2.Inner, Env: t2.Env},
			posOp, mode, c, stack, opts,
		)
		if err != nil {
			return value.Closure{}, true, err
		}
		return value.Closure{
			Body: value.Annotated{Position: posOp, AnnKind: value.KindDefault, Inner: inner.Body},
			Env:  inner.Env,
		}, true, nil

	case a1ok && a1.AnnKind == value.KindDefault && !a2ok:
		return t2, true, nil

	case a2ok && a2.AnnKind == value.KindDefault && !a1ok:
		return t1, true, nil

	default:
		return value.Closure{}, false, nil
	}
}
