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

package bridge

import (
	"fmt"

	"github.com/recl-lang/recl/pkg/recl/term"
)

// Arity names how many operands a PrimOp's surface form takes. The
// dispatcher that actually executes a PrimOp lives outside this tree;
// this package only needs enough of the enumeration to canonicalize
// argument order during lowering.
type Arity int

const (
	Unary Arity = iota
	Binary
	Nary
)

// PrimOp enumerates the primitive operators the bridge knows how to
// canonicalize. It is not the full operator set a real dispatcher would
// support — only the handful that need argument-order canonicalization,
// plus IfThenElse, which the bridge flattens into term form regardless
// of dispatch.
type PrimOp int

const (
	OpArrayAt PrimOp = iota
	OpStringContains
	OpStringSubstr
	OpIfThenElse
)

func (op PrimOp) String() string {
	switch op {
	case OpArrayAt:
		return "ArrayAt"
	case OpStringContains:
		return "StringContains"
	case OpStringSubstr:
		return "StringSubstr"
	case OpIfThenElse:
		return "IfThenElse"
	default:
		return "<unknown primop>"
	}
}

// Arity reports the surface arity of op.
func (op PrimOp) Arity() Arity {
	switch op {
	case OpArrayAt, OpStringContains:
		return Binary
	case OpStringSubstr, OpIfThenElse:
		return Nary
	default:
		return Nary
	}
}

// Canonicalize reorders a primitive operator's surface arguments into
// the evaluator's canonical argument order:
//
//   - ArrayAt(array, index) and StringContains(string, substr) are
//     written in source/surface order but the evaluator expects the
//     operands swapped: ArrayAt(index, array), StringContains(substr,
//     string).
//   - StringSubstr(string, start, end) rotates to (start, end, string).
//   - IfThenElse(cond, then, else) is already the evaluator's canonical
//     three-argument form; Canonicalize is the identity for it.
//
// args must have exactly the surface arity op.Arity() implies (2 for
// ArrayAt/StringContains, 3 for StringSubstr/IfThenElse); a mismatched
// count is a bug in the caller, not a malformed program, so Canonicalize
// reports it as an error rather than panicking.
func Canonicalize(op PrimOp, args []term.Term) ([]term.Term, error) {
	switch op {
	case OpArrayAt:
		if len(args) != 2 {
			return nil, fmt.Errorf("bridge: %s expects 2 arguments, got %d", op, len(args))
		}
		return []term.Term{args[1], args[0]}, nil
	case OpStringContains:
		if len(args) != 2 {
			return nil, fmt.Errorf("bridge: %s expects 2 arguments, got %d", op, len(args))
		}
		return []term.Term{args[1], args[0]}, nil
	case OpStringSubstr:
		if len(args) != 3 {
			return nil, fmt.Errorf("bridge: %s expects 3 arguments, got %d", op, len(args))
		}
		// (string, start, end) -> (start, end, string)
		return []term.Term{args[1], args[2], args[0]}, nil
	case OpIfThenElse:
		if len(args) != 3 {
			return nil, fmt.Errorf("bridge: %s expects 3 arguments, got %d", op, len(args))
		}
		return args, nil
	default:
		return nil, fmt.Errorf("bridge: unknown primop %v", op)
	}
}
