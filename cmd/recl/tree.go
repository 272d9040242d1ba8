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

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/query"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

func init() {
	register(&formatter{
		name: "tree",
		f:    doTree,
		help: "display the merged record as an indented tree",
	})
	register(&formatter{
		name: "names",
		f:    doNames,
		help: "display the dotted path of every field, nested records included",
	})
}

// doTree writes rec as a tree, one field per line, with nested records
// indented under their parent the way a merged document's shape is
// meant to be read at a glance. Absent fields (no value, e.g. a
// contract-only declaration) print as a bare name with no value.
func doTree(w io.Writer, rec value.Record, e *env.Env, c *cache.Cache) error {
	return writeTree(w, rec, e, c, "")
}

func writeTree(w io.Writer, rec value.Record, e *env.Env, c *cache.Cache, indent string) error {
	for _, name := range query.List(rec) {
		f := rec.Data.Fields[name]
		if f.Value == nil {
			fmt.Fprintf(w, "%s%s\n", indent, name)
			continue
		}

		resolved, err := query.Force(f.Value, e, c)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if nested, ok := resolved.Term.(value.Record); ok {
			fmt.Fprintf(w, "%s%s:\n", indent, name)
			iw := diag.NewIndentWriter(w, "  ")
			if err := writeTree(iw, nested, resolved.Env, c, indent); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(w, "%s%s: %s\n", indent, name, renderScalar(resolved.Term))
	}
	return nil
}

// doNames writes the dotted path of every field Walk visits (including
// record-valued fields themselves, not just their leaves), sorted, one
// per line; a quick way to check which fields a merge actually
// produced.
func doNames(w io.Writer, rec value.Record, e *env.Env, c *cache.Cache) error {
	var names []string
	err := query.Walk(rec, e, c, func(path string, f *field.Field) error {
		names = append(names, path)
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}

// renderScalar formats a non-record term for display. Records are
// handled by the caller so they can recurse and indent instead.
func renderScalar(t term.Term) string {
	switch v := t.(type) {
	case value.Null:
		return "null"
	case value.Bool:
		return fmt.Sprintf("%t", v.Val)
	case value.Number:
		return fmt.Sprintf("%g", v.Val)
	case value.String:
		return fmt.Sprintf("%q", v.Val)
	case value.Label:
		return fmt.Sprintf("'%s", v.Val)
	case value.Enum:
		return fmt.Sprintf("`%s", v.Tag)
	case value.Array:
		return fmt.Sprintf("<array, %d elements>", len(v.Elements))
	case value.Function:
		return "<function>"
	case value.Opaque:
		return "<opaque>"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}
