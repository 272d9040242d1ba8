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

// Package term defines the lowest common type shared by the value model
// and the field model: Term, the evaluator's term representation, and
// Var, the one term variant both the cache and the merge engine need to
// recognize by name (a reference into the recursive-value cache).
//
// Keeping Term and Var here, rather than in package value, breaks what
// would otherwise be an import cycle: value.Record holds fields defined
// in package field, and field.Field holds a Term — so neither value nor
// field can be the home of Term itself.
package term

// Kind discriminates the variants of Term for the accessor that
// dismantles a value into (kind, position).
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindLabel
	KindEnum
	KindArray
	KindRecord
	KindFunction
	KindAnnotated
	KindOpaque
	KindVar
	KindMergeApp
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindLabel:
		return "Label"
	case KindEnum:
		return "Enum"
	case KindArray:
		return "Array"
	case KindRecord:
		return "Record"
	case KindFunction:
		return "Function"
	case KindAnnotated:
		return "Annotated"
	case KindOpaque:
		return "Opaque"
	case KindVar:
		return "Var"
	case KindMergeApp:
		return "MergeApp"
	default:
		return "<unknown kind>"
	}
}

// Term is the evaluator's term representation: every value variant as
// well as the unevaluated forms the merge engine builds (Var,
// MergeApp) implement it.
type Term interface {
	// Kind identifies which variant this term is.
	Kind() Kind
	// Pos returns the term's source position, or the zero Position if
	// none is known (e.g. a term synthesized by the merge engine).
	Pos() Position
}

// Var is a reference to an identifier that must resolve, in the
// accompanying environment, to a cache index.
// It is the one term shape the saturate helper (field.SaturateTerm)
// pattern-matches on explicitly; every other term passes through
// saturation unchanged.
type Var struct {
	Position Position
	Name     string
}

func (v Var) Kind() Kind    { return KindVar }
func (v Var) Pos() Position { return v.Position }

// WithPos returns a copy of v positioned at p.
func (v Var) WithPos(p Position) Var {
	v.Position = p
	return v
}

// MergeApp is the unevaluated term "Merge(left, right)" that
// fieldsMergeClosurize stores for a field whose two sides must be
// recursively merged once both are saturated against the final record.
// A nested field-level merge is always the plain, symmetric combination
// — the distinction between standard and contract-mode merging is a
// property of the top-level Merge call (see package merge), not of this
// inner term, mirroring Nickel's own Term::Op2(BinaryOp::Merge, ..)
// which likewise carries no mode.
type MergeApp struct {
	Position Position
	Left     Term
	Right    Term
}

func (m MergeApp) Kind() Kind    { return KindMergeApp }
func (m MergeApp) Pos() Position { return m.Position }
