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

// Program recl merges YAML record fixtures and displays the result.
//
// Usage: recl [--format FORMAT] [--trace TRACEFILE] FILE [FILE ...]
//
// Each FILE is parsed as a YAML record document (see internal/fixture).
// The files are merged left to right with the standard (non-contract)
// merge mode, and the resulting record is displayed in FORMAT, which
// defaults to "tree". Use "recl --help" for a list of available
// formats.
//
// THIS PROGRAM IS STILL JUST A DEVELOPMENT TOOL.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"sort"
	"strings"

	"github.com/pborman/getopt"
	"github.com/pkg/errors"

	"github.com/recl-lang/recl/internal/fixture"
	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/merge"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

// Each format must register a formatter with register. The function f
// is called once with the merged record, its environment, and the
// cache it was merged against.
type formatter struct {
	name string
	f    func(io.Writer, value.Record, *env.Env, *cache.Cache) error
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

var stop = os.Exit

func main() {
	var format string
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var traceP string
	var help bool
	getopt.StringVarLong(&format, "format", 0, "format to display: "+strings.Join(formats, ", "), "FORMAT")
	getopt.StringVarLong(&traceP, "trace", 0, "write a pprof execution trace to TRACEFILE", "TRACEFILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("FILE [...]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if traceP != "" {
		fp, err := os.Create(traceP)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		trace.Start(fp)
		stop = func(c int) { trace.Stop(); os.Exit(c) }
		defer trace.Stop()
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			fmt.Fprintf(os.Stderr, "    %s - %s\n", fn, formatters[fn].help)
		}
		stop(0)
	}

	if format == "" {
		format = "tree"
	}
	f, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format. Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	files := getopt.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "recl: at least one FILE is required")
		stop(1)
	}

	rec, e, c, err := mergeFiles(files)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}

	if err := f.f(os.Stdout, rec, e, c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}
}

// mergeFiles reads and parses every file as a YAML record fixture and
// folds them together left to right with the standard merge mode,
// wrapping each failure with the offending file's name.
func mergeFiles(files []string) (value.Record, *env.Env, *cache.Cache, error) {
	c := cache.New()
	var acc value.Closure
	stack := &diag.CallStack{}
	opts := merge.DefaultOptions()

	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return value.Record{}, nil, nil, errors.Wrapf(err, "reading %s", name)
		}
		rec, e, err := fixture.Parse(c, string(data))
		if err != nil {
			return value.Record{}, nil, nil, errors.Wrapf(err, "parsing %s", name)
		}
		next := value.Closure{Body: rec, Env: e}
		if i == 0 {
			acc = next
			continue
		}
		acc, err = merge.Merge(acc, next, term.Position{}, merge.Standard(), c, stack, opts)
		if err != nil {
			return value.Record{}, nil, nil, errors.Wrapf(err, "merging %s", name)
		}
	}

	rec, ok := acc.Body.(value.Record)
	if !ok {
		return value.Record{}, nil, nil, fmt.Errorf("recl: merged result is not a record (%T)", acc.Body)
	}
	return rec, acc.Env, c, nil
}
