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

import "fmt"

// RuntimeOnlyKind enumerates term shapes that must never appear at the
// parsing boundary: they are only ever produced by the
// evaluator itself (merge's own cache entries, a contract application
// mid-flight, an error already raised). A lowering that builds one of
// these from source syntax is a bug, not a malformed program.
type RuntimeOnlyKind int

const (
	SealingKey RuntimeOnlyKind = iota
	SealedTerm
	ResolvedImport
	CustomContract
	RuntimeError
	Closure
	ForeignID
)

func (k RuntimeOnlyKind) String() string {
	switch k {
	case SealingKey:
		return "sealing key"
	case SealedTerm:
		return "sealed term"
	case ResolvedImport:
		return "resolved import"
	case CustomContract:
		return "custom contract"
	case RuntimeError:
		return "runtime error"
	case Closure:
		return "closure"
	case ForeignID:
		return "foreign ID"
	default:
		return "<unknown runtime-only kind>"
	}
}

// RuntimeOnlyTermError reports that a term built at the parsing boundary
// carries a shape only the evaluator is allowed to produce.
type RuntimeOnlyTermError struct {
	Kind RuntimeOnlyKind
	Node ASTNode
}

func (e *RuntimeOnlyTermError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("bridge: %s must not appear at the parsing boundary", e.Kind)
	}
	start, end := e.Node.Span()
	return fmt.Sprintf("bridge: %s must not appear at the parsing boundary (%s at %d:%d)", e.Kind, e.Node.ASTKind(), start, end)
}

// RuntimeOnlyChecker is implemented by an AST node that can report
// whether it (not its descendants — ValidateNoRuntimeOnlyTerms recurses) represents one of
// the RuntimeOnlyKind shapes. A parser's node types implement this so
// ValidateNoRuntimeOnlyTerms can walk an arbitrary AST without the bridge
// needing to know the parser's concrete node types.
type RuntimeOnlyChecker interface {
	ASTNode
	// RuntimeOnlyKind reports the node's runtime-only shape and true, or
	// (0, false) if the node is an ordinary surface-syntax node.
	RuntimeOnlyKind() (RuntimeOnlyKind, bool)
	// Children returns the node's direct AST children, for recursion.
	Children() []ASTNode
}

// ValidateNoRuntimeOnlyTerms walks root and every descendant, failing
// loudly the first time it finds a node reporting a RuntimeOnlyKind. A
// parser that never constructs these shapes will always pass; this
// exists so a bug that does construct one is caught at the boundary
// rather than silently reaching merge, which does not expect to see
// them — their presence at the parsing boundary is always a bug.
func ValidateNoRuntimeOnlyTerms(root ASTNode) error {
	n, ok := root.(RuntimeOnlyChecker)
	if !ok {
		return nil
	}
	if kind, bad := n.RuntimeOnlyKind(); bad {
		return &RuntimeOnlyTermError{Kind: kind, Node: root}
	}
	for _, child := range n.Children() {
		if err := ValidateNoRuntimeOnlyTerms(child); err != nil {
			return err
		}
	}
	return nil
}
