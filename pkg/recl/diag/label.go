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

// Package diag implements the merge engine's failure semantics: a
// closed error union plus the builder-friendly Label and CallStack
// types used to enrich contract-violation diagnostics.
package diag

import "github.com/recl-lang/recl/pkg/recl/term"

// Label carries diagnostic context for a contract failure: polarity
// information lives with the caller that constructs it (merge only
// reads/enriches the message and notes), the span of the offending
// contract, and a message/notes pair the merge engine decorates via
// WithDiagnosticMessage/WithDiagnosticNotes before returning.
type Label struct {
	// Polarity records which side of a contract check l describes;
	// merge does not interpret it, only propagates it.
	Polarity string
	Span     term.Position

	DiagnosticMessage string
	DiagnosticNotes   []string
}

// WithDiagnosticMessage returns a copy of l with its diagnostic message
// set to msg.
func (l Label) WithDiagnosticMessage(msg string) Label {
	l.DiagnosticMessage = msg
	return l
}

// WithDiagnosticNotes returns a copy of l with its diagnostic notes set
// to notes.
func (l Label) WithDiagnosticNotes(notes []string) Label {
	cp := make([]string, len(notes))
	copy(cp, notes)
	l.DiagnosticNotes = cp
	return l
}

// Frame is one entry of a CallStack: a human-readable description of
// the call site plus its source position.
type Frame struct {
	Description string
	Pos         term.Position
}

// CallStack is the evaluator's call stack, threaded through merge so
// that failures can be reported with the context that produced them.
// A sealed-tail violation must move (take), not copy, the call stack
// when it consumes it — Take models that move.
type CallStack struct {
	frames []Frame
}

// Push appends f to the stack.
func (cs *CallStack) Push(f Frame) {
	cs.frames = append(cs.frames, f)
}

// Frames returns the stack's frames, outermost first.
func (cs *CallStack) Frames() []Frame {
	return cs.frames
}

// Take returns a snapshot of cs and clears cs, modelling Rust's
// std::mem::take(call_stack): the caller that receives the result now
// owns the frames; cs is left as an empty stack, ready for reuse.
func (cs *CallStack) Take() CallStack {
	taken := CallStack{frames: cs.frames}
	cs.frames = nil
	return taken
}

// Clone returns an independent copy of cs, for the (rare) path where a
// call stack must be duplicated rather than moved — e.g. a Contract-mode
// non-record blame error, which does not consume the live stack.
func (cs CallStack) Clone() CallStack {
	cp := make([]Frame, len(cs.frames))
	copy(cp, cs.frames)
	return CallStack{frames: cp}
}
