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

// Package tracecsv writes the merge trace cmd/recl-lsp's --trace <path>
// flag asks for: cmd/recl-lsp appends one CSV row per top-level field of
// each job's merged record (the merge engine itself writes no rows). The filesystem is an afero.Fs rather than the stdlib os
// package directly, so the writer can be exercised against an
// in-memory filesystem in tests — the same swap-the-implementation
// idiom goyang used for its own findFile (a package-level variable
// holding the read function), generalized to an injected interface.
package tracecsv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Decision names the kind of field-level step a trace row records.
type Decision string

const (
	DecisionRevert     Decision = "revert"
	DecisionSaturate   Decision = "saturate"
	DecisionClosurize  Decision = "closurize"
	DecisionMergeField Decision = "merge_field"
)

// Row is one line of the trace: which field, what decision, and which
// side(s) of the merge it came from.
type Row struct {
	FieldPath string
	Decision  Decision
	Detail    string
}

// Writer appends Rows to a CSV file, creating it (with a header) on
// first use if it does not already exist.
type Writer struct {
	fs   afero.Fs
	path string
	w    *csv.Writer
	file afero.File
}

// New opens path on fs for appending, writing a header row if the file
// is new. Callers must call Close when done to flush buffered rows.
func New(fs afero.Fs, path string) (*Writer, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("tracecsv: checking %s: %w", path, err)
	}
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("tracecsv: opening %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	tw := &Writer{fs: fs, path: path, w: w, file: f}
	if !exists {
		if err := w.Write([]string{"field_path", "decision", "detail"}); err != nil {
			return nil, fmt.Errorf("tracecsv: writing header to %s: %w", path, err)
		}
		w.Flush()
	}
	return tw, nil
}

// NewOS is the common case: New against the real filesystem.
func NewOS(path string) (*Writer, error) {
	return New(afero.NewOsFs(), path)
}

// Write appends one trace row.
func (tw *Writer) Write(r Row) error {
	if err := tw.w.Write([]string{r.FieldPath, string(r.Decision), r.Detail}); err != nil {
		return fmt.Errorf("tracecsv: writing row for %s: %w", r.FieldPath, err)
	}
	tw.w.Flush()
	return tw.w.Error()
}

// Close flushes and closes the underlying file.
func (tw *Writer) Close() error {
	tw.w.Flush()
	if err := tw.w.Error(); err != nil {
		tw.file.Close()
		return err
	}
	return tw.file.Close()
}
