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

package diag

import (
	"fmt"

	"github.com/kylelemons/godebug/pretty"
	"github.com/recl-lang/recl/pkg/recl/term"
)

// IllegalPolymorphicTailAction names the action that triggered an
// IllegalPolymorphicTailAccessError. Merge is the only action this
// package currently needs, but the type mirrors an action-tagged shape
// so a future caller (e.g. field access) can add its own without
// changing the error's shape.
type IllegalPolymorphicTailAction int

const (
	ActionMerge IllegalPolymorphicTailAction = iota
)

func (a IllegalPolymorphicTailAction) String() string {
	switch a {
	case ActionMerge:
		return "Merge"
	default:
		return "<unknown action>"
	}
}

// IncompatibleArgsError is returned when two atomic terms of the same
// variant fail equality, or when merge is attempted between two
// differently-tagged atomic variants.
type IncompatibleArgsError struct {
	T1, T2 term.Term
	PosOp  term.Position
}

func (e *IncompatibleArgsError) Error() string {
	return fmt.Sprintf("cannot merge incompatible values at %s:\n%s\nand\n%s",
		e.PosOp, render(e.T1), render(e.T2))
}

// BlameError is a contract-mode failure: an extra field in a closed
// contract, or a non-record value checked against a record contract.
type BlameError struct {
	Label        Label
	EvaluatedArg term.Term // optional; nil if unavailable
	CallStack    CallStack
}

func (e *BlameError) Error() string {
	msg := e.Label.DiagnosticMessage
	if msg == "" {
		msg = "contract violation"
	}
	s := fmt.Sprintf("blame error: %s", msg)
	for _, n := range e.Label.DiagnosticNotes {
		s += "\n  note: " + n
	}
	return s
}

// IllegalPolymorphicTailAccessError is returned when a merge would touch
// a sealed record tail, which is opaque and must never be introspected
// or combined.
type IllegalPolymorphicTailAccessError struct {
	Action       IllegalPolymorphicTailAction
	Label        Label
	EvaluatedArg term.Term
	CallStack    CallStack
}

func (e *IllegalPolymorphicTailAccessError) Error() string {
	return fmt.Sprintf("illegal access to a sealed polymorphic tail during %s at %s", e.Action, e.Label.Span)
}

// UnboundIdentifierError is returned when saturation (or, defensively,
// revert_closurize) encounters a variable whose identifier does not
// resolve in the environment it is being evaluated against.
type UnboundIdentifierError struct {
	Name string
	Pos  term.Position
}

func (e *UnboundIdentifierError) Error() string {
	return fmt.Sprintf("unbound identifier %q at %s", e.Name, e.Pos)
}

// NotImplementedError is returned for paths deliberately left
// unimplemented, such as merging non-empty arrays.
type NotImplementedError struct {
	What string
	Pos  term.Position
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s at %s", e.What, e.Pos)
}

// render pretty-prints a term for inclusion in a non-blame error
// message: non-blame errors render the two offending terms with their
// positions.
func render(t term.Term) string {
	if t == nil {
		return "<nil>"
	}
	return pretty.Sprint(t)
}
