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

// Package bridge names the boundary between the surface parser/arena AST
// and the merge core, without implementing either side of it. The parser,
// the arena AST it produces, and the language server are excluded
// collaborators: this package gives them a shape to implement against
// (ASTNode, Lowering) so the merge core can be built, tested, and linked
// without a parser ever existing in this tree.
package bridge

import "github.com/recl-lang/recl/pkg/recl/term"

// ASTNode is satisfied by whatever arena-allocated AST node type a parser
// package would define. It carries no payload accessors of its own — a
// real parser's node types would add those — only the operations the
// bridge needs to drive lowering and error reporting.
type ASTNode interface {
	// ASTKind names the node's syntactic form, e.g. "App", "Op2", "Match".
	ASTKind() string
	// Span reports the node's source span for diagnostics.
	Span() (start, end int)
}

// Lowering maps arena AST nodes to the evaluator's term representation
// and back. A real parser package implements this; the merge core never
// calls it, since merge only ever sees closures a lowering has already
// produced.
type Lowering interface {
	// Lower converts a single AST node to a term, recursively lowering
	// its children. It returns an error if the node (or one of its
	// descendants) carries a shape PrimOp canonicalization or
	// ValidateNoRuntimeOnlyTerms would reject.
	Lower(ASTNode) (term.Term, error)
	// Raise converts a term back to an AST node, used by tooling that
	// needs to re-print an evaluated or partially evaluated term (e.g.
	// a language server's hover text). Not every term is raisable —
	// runtime-only terms never are.
	Raise(term.Term) (ASTNode, error)
}
