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
	"bytes"
	"io"
)

// IndentWriter prefixes every line written through it with a fixed
// string; cmd/recl's tree formatter stacks one per nesting level to
// print a record's fields under a growing indent. A line is anything up
// to and including its trailing '\n'; a
// prefix is only ever emitted once a new line actually starts.
type IndentWriter struct {
	w      io.Writer
	prefix []byte
	atBOL  bool
}

// NewIndentWriter returns a Writer that indents every line sent through
// it with prefix, writing to w.
func NewIndentWriter(w io.Writer, prefix string) *IndentWriter {
	return &IndentWriter{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write indents p's lines and forwards them to the underlying writer. It
// reports, as its own byte count, only the prefix of p whose fully
// prefixed output the underlying writer actually accepted — a short
// write partway through a line rolls the writer's beginning-of-line
// state back to the last complete input byte, not the line in progress.
func (iw *IndentWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p)+len(iw.prefix))
	boundaries := make([]int, len(p))
	atBOL := iw.atBOL
	for i, b := range p {
		if atBOL {
			out = append(out, iw.prefix...)
			atBOL = false
		}
		out = append(out, b)
		if b == '\n' {
			atBOL = true
		}
		boundaries[i] = len(out)
	}

	nw, err := iw.w.Write(out)

	n := 0
	newAtBOL := iw.atBOL
	for i, boundary := range boundaries {
		if boundary > nw {
			break
		}
		n = i + 1
		newAtBOL = p[i] == '\n'
	}
	iw.atBOL = newAtBOL

	if n < len(p) && err == nil {
		err = io.ErrShortWrite
	}
	return n, err
}

// IndentString returns s with every line prefixed by prefix.
func IndentString(prefix, s string) string {
	return string(IndentBytes([]byte(prefix), []byte(s)))
}

// IndentBytes returns b with every line prefixed by prefix.
func IndentBytes(prefix, b []byte) []byte {
	var buf bytes.Buffer
	w := NewIndentWriter(&buf, string(prefix))
	w.Write(b)
	return buf.Bytes()
}
