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

// Package value defines the tagged value variants the merge engine
// operates on: Null, Bool, Number, String, Label, Enum, Array, Record,
// Function, Annotated, and Opaque, plus the Closure (a term paired with
// its defining environment) the merge engine's entry point consumes and
// produces.
package value

import (
	"math"

	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/term"
)

// Null, Bool, Number, String, Label and Enum are the atomic variants:
// merge combines two of the same kind iff their payloads are equal (or,
// for Number, within an epsilon of each other).
type (
	Null   struct{ Position term.Position }
	Bool   struct {
		Position term.Position
		Val      bool
	}
	Number struct {
		Position term.Position
		Val      float64
	}
	String struct {
		Position term.Position
		Val      string
	}
	Label struct {
		Position term.Position
		Val      string
	}
	Enum struct {
		Position term.Position
		Tag      string
	}
)

func (Null) Kind() term.Kind     { return term.KindNull }
func (v Null) Pos() term.Position { return v.Position }

func (Bool) Kind() term.Kind     { return term.KindBool }
func (v Bool) Pos() term.Position { return v.Position }

func (Number) Kind() term.Kind     { return term.KindNumber }
func (v Number) Pos() term.Position { return v.Position }

func (String) Kind() term.Kind     { return term.KindString }
func (v String) Pos() term.Position { return v.Position }

func (Label) Kind() term.Kind     { return term.KindLabel }
func (v Label) Pos() term.Position { return v.Position }

func (Enum) Kind() term.Kind     { return term.KindEnum }
func (v Enum) Pos() term.Position { return v.Position }

// ArrayAttrs carries the array metadata merge must combine; only the
// empty-array merge path is pinned down, so this is deliberately thin.
type ArrayAttrs struct {
	// PendingContracts are contracts applied lazily to each element.
	PendingContracts []field.PendingContract
}

// Array is a sequence of closures. Non-empty array merge is explicitly
// left unimplemented (diag.NotImplementedError), so this variant exists
// mostly to make that failure path exercisable.
type Array struct {
	Position term.Position
	Elements []Closure
	Attrs    ArrayAttrs
}

func (Array) Kind() term.Kind     { return term.KindArray }
func (v Array) Pos() term.Position { return v.Position }

// RecordAttrs is { open bool, ... }: Open governs whether a record
// accepts fields it does not itself declare when used as a contract.
type RecordAttrs struct {
	Open bool
}

// SealedTail is the opaque, parametric part of a record that forbids
// introspection or merging. Its payload is never interpreted by merge,
// only detected and blamed.
type SealedTail struct {
	Label          diagLabel
	EvaluatedArg   term.Term
}

// diagLabel avoids an import of package diag from package value: value
// must not depend on diag (diag already depends on term, and the merge
// engine is what actually needs a concrete diag.Label when it blames a
// sealed tail). Concretely this is always a diag.Label value at call sites;
// kept as an opaque field here the same way field.PendingContract keeps
// its Contract opaque.
type diagLabel = any

// RecordData is the record value's payload: identifier-to-field mapping
// plus deterministic iteration order, attrs, and an optional sealed
// tail.
type RecordData struct {
	Fields map[string]*field.Field
	// Keys preserves insertion order for deterministic iteration and
	// printing; the field set itself is semantically unordered
	// definition.
	Keys       []string
	Attrs      RecordAttrs
	SealedTail *SealedTail
}

// Record is a record value.
type Record struct {
	Position term.Position
	Data     RecordData
}

func (Record) Kind() term.Kind     { return term.KindRecord }
func (v Record) Pos() term.Position { return v.Position }

// Function is opaque to merge: there is no atomic case for merging two
// functions, so only enough structure to satisfy Term and carry a
// position is provided.
type Function struct {
	Position term.Position
	Body     term.Term
	Env      *env.Env
}

func (Function) Kind() term.Kind     { return term.KindFunction }
func (v Function) Pos() term.Position { return v.Position }

// AnnotationKind distinguishes the enriched-value interactions merge
// handles beyond plain record/atomic merging.
type AnnotationKind int

const (
	// KindPlain carries no special merge behaviour of its own.
	KindPlain AnnotationKind = iota
	// KindDefault values are overridden outright by a plain value on
	// the other side of a merge, and merge their inner values together
	// (staying Default) when both sides are Default.
	KindDefault
	// KindContract values carry a pending contract check alongside
	// their inner value; merge does not interpret the contract.
	KindContract
	// KindDocstring values carry documentation alongside their inner
	// value.
	KindDocstring
)

// Annotated wraps an inner term with a merge-relevant tag plus whatever
// payload that tag implies (a doc string, a pending contract reference,
// or nothing beyond the Default marker).
type Annotated struct {
	Position term.Position
	AnnKind  AnnotationKind
	Doc      string
	Contract *field.PendingContract
	Inner    term.Term
}

func (Annotated) Kind() term.Kind     { return term.KindAnnotated }
func (v Annotated) Pos() term.Position { return v.Position }

// Opaque is a term the merge engine does not interpret at all beyond
// its position — the representation for contract-function bodies and
// anything else outside the merge engine's scope.
type Opaque struct {
	Position term.Position
	Payload  any
}

func (Opaque) Kind() term.Kind     { return term.KindOpaque }
func (v Opaque) Pos() term.Position { return v.Position }

// Closure pairs a term with the environment it must be evaluated in —
// the unit the merge engine's entry point both consumes (two of them)
// and produces (one, or an error).
type Closure struct {
	Body term.Term
	Env  *env.Env
}

// Equal implements the atomic-equality rules: exact for every variant
// except Number, which is compared within eps. Non-atomic
// or differently-tagged values are never equal under this function —
// merge uses it only to decide whether two *already-matched-kind*
// atomics combine, not as a general value-equality test.
func Equal(a, b term.Term, eps float64) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av.Val == b.(Bool).Val
	case Number:
		return math.Abs(av.Val-b.(Number).Val) < eps
	case String:
		return av.Val == b.(String).Val
	case Label:
		return av.Val == b.(Label).Val
	case Enum:
		return av.Tag == b.(Enum).Tag
	default:
		return false
	}
}
