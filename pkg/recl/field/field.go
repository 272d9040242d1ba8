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

import "github.com/recl-lang/recl/pkg/recl/term"

// LabeledType pairs a diagnostic label with an opaque type or contract
// payload. Type-system inference and contract-function implementations
// are both out of scope for merge — it treats them as opaque — so the
// payload is kept uninterpreted here.
type LabeledType struct {
	Label   string
	Payload any
}

// TypeAnnotation holds a field's optional declared static type plus the
// ordered sequence of contracts attached to it.
type TypeAnnotation struct {
	Typ       *LabeledType
	Contracts []LabeledType
}

// Contract is the opaque payload of a PendingContract. Merge only moves
// it around (via MapContract) and never evaluates it; in this
// implementation it is typically a compiled cel-go program (see
// pkg/recl/field/contract.go), but nothing in this package requires
// that concrete type.
type Contract any

// PendingContract is a contract attached to a field that will be
// applied lazily when the field is accessed. Its Term is usually a
// reference into the recursive-value cache (term.Var) so that
// RevertClosurize can rewire it along with the field's value; a
// directly-embedded opaque Contract passes through unchanged.
type PendingContract struct {
	Label string
	Term  term.Term
}

// MapContract returns a copy of pc with its term replaced by f(pc.Term).
func (pc PendingContract) MapContract(f func(term.Term) term.Term) PendingContract {
	pc.Term = f(pc.Term)
	return pc
}

// FieldMetadata is the non-value part of a field: documentation,
// annotation, and the optional/not-exported/priority flags.
type FieldMetadata struct {
	Doc         *string
	Annotation  TypeAnnotation
	Optional    bool
	NotExported bool
	Priority    Priority
}

// Field is a record field: an optional value term plus metadata plus
// any pending contracts still to be applied.
type Field struct {
	Value            term.Term // nil if absent
	Metadata         FieldMetadata
	PendingContracts []PendingContract
}
