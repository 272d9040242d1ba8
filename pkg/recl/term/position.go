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

package term

import "fmt"

// Position is a source span. It is optional: the zero Position means
// "no source position known", matching terms synthesized by the merge
// engine itself rather than read from source.
type Position struct {
	File        string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	known       bool
}

// NewPosition builds a known Position.
func NewPosition(file string, startLine, startColumn, endLine, endColumn int) Position {
	return Position{
		File:        file,
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
		known:       true,
	}
}

// IsKnown reports whether the position carries real source information.
func (p Position) IsKnown() bool { return p.known }

// Inherited returns p unchanged; it exists so call sites can mark, in
// code, the spots where the original term's position is deliberately
// propagated rather than a fresh synthesized one.
func (p Position) Inherited() Position { return p }

func (p Position) String() string {
	if !p.known {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", p.File, p.StartLine, p.StartColumn, p.EndLine, p.EndColumn)
}
