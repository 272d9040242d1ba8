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

// Program recl-lsp is the thin executable collaborator around the merge
// engine: it reads merge jobs (one per line, a space-separated list of
// YAML record fixture files) from standard input, merges each job's
// files together, and optionally records a field-level CSV trace and
// runs a second, independent evaluator in the background. It does not
// itself speak the language server protocol — the file cache, hover,
// and diagnostics surface are excluded collaborators; this executable
// only exists to exercise the merge engine's operational surface
// (tracing, a detached evaluator, an explicit stack size) the way a
// real language server's evaluator would be driven.
package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recl-lang/recl/internal/cliconfig"
	"github.com/recl-lang/recl/internal/fixture"
	"github.com/recl-lang/recl/internal/obslog"
	"github.com/recl-lang/recl/internal/tracecsv"
	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/diag"
	"github.com/recl-lang/recl/pkg/recl/merge"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

func main() {
	var (
		configPath     string
		tracePath      string
		backgroundEval bool
	)

	root := &cobra.Command{
		Use:   "recl-lsp",
		Short: "drive the merge engine from stdin merge jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, tracePath, backgroundEval)
		},
	}
	root.SilenceUsage = true
	root.Flags().StringVar(&configPath, "config", "", "optional YAML defaults file")
	root.Flags().StringVar(&tracePath, "trace", "", "write a field-level CSV trace to PATH")
	root.Flags().BoolVar(&backgroundEval, "background-eval", false, "also evaluate every job on a detached evaluator")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, tracePath string, backgroundEval bool) error {
	defaults, err := cliconfig.Load(configPath)
	if err != nil {
		return err
	}
	if tracePath == "" {
		tracePath = defaults.TracePath
	}
	if !backgroundEval {
		backgroundEval = defaults.BackgroundEval
	}
	debug.SetMaxStack(defaults.StackSizeBytes)

	logger, err := obslog.New(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var trace *tracecsv.Writer
	if tracePath != "" {
		trace, err = tracecsv.NewOS(tracePath)
		if err != nil {
			return err
		}
		defer trace.Close()
	}

	var bg *backgroundEvaluator
	if backgroundEval {
		bg = newBackgroundEvaluator(obslog.NewBackgroundEval(obslog.DefaultBackgroundEvalConfig(tracePath + ".bg.log")))
		defer bg.stop()
	}

	scanner := bufio.NewScanner(os.Stdin)
	c := cache.New()
	for scanner.Scan() {
		files := strings.Fields(scanner.Text())
		if len(files) == 0 {
			continue
		}
		rec, err := mergeJob(c, files, trace)
		if err != nil {
			logger.Error("merge job failed", zap.Strings("files", files), zap.Error(err))
			continue
		}
		logger.Info("merge job completed", zap.Strings("files", files), zap.Int("fields", len(rec.Data.Keys)))
		if bg != nil {
			bg.submit(files)
		}
	}
	return scanner.Err()
}

// mergeJob reads and merges files in order against c,
// recording a trace row for every top-level field the final record
// carries if trace is non-nil.
func mergeJob(c *cache.Cache, files []string, tr *tracecsv.Writer) (value.Record, error) {
	var acc value.Closure
	stack := &diag.CallStack{}
	opts := merge.DefaultOptions()

	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return value.Record{}, fmt.Errorf("reading %s: %w", name, err)
		}
		rec, e, err := fixture.Parse(c, string(data))
		if err != nil {
			return value.Record{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		next := value.Closure{Body: rec, Env: e}
		if i == 0 {
			acc = next
			continue
		}
		acc, err = merge.Merge(acc, next, term.Position{}, merge.Standard(), c, stack, opts)
		if err != nil {
			return value.Record{}, fmt.Errorf("merging %s: %w", name, err)
		}
	}

	rec, ok := acc.Body.(value.Record)
	if !ok {
		return value.Record{}, fmt.Errorf("merged result is not a record (%T)", acc.Body)
	}
	if tr != nil {
		for _, name := range rec.Data.Keys {
			if err := tr.Write(tracecsv.Row{FieldPath: name, Decision: tracecsv.DecisionMergeField, Detail: "top-level"}); err != nil {
				return value.Record{}, err
			}
		}
	}
	return rec, nil
}

// backgroundEvaluator re-runs submitted jobs against its own cache on a
// single goroutine, entirely independent of the foreground evaluator's
// cache: the merge engine's cache is single-writer and never aliased,
// so a detached evaluator needs its own.
type backgroundEvaluator struct {
	logger *zap.Logger
	jobs   chan []string
	done   chan struct{}
	once   sync.Once
}

func newBackgroundEvaluator(logger *zap.Logger) *backgroundEvaluator {
	bg := &backgroundEvaluator{
		logger: logger,
		jobs:   make(chan []string, 16),
		done:   make(chan struct{}),
	}
	go bg.loop()
	return bg
}

func (bg *backgroundEvaluator) submit(files []string) {
	select {
	case bg.jobs <- files:
	default:
		bg.logger.Warn("background evaluator queue full, dropping job", zap.Strings("files", files))
	}
}

func (bg *backgroundEvaluator) loop() {
	c := cache.New()
	for {
		select {
		case files := <-bg.jobs:
			if _, err := mergeJob(c, files, nil); err != nil {
				bg.logger.Error("background merge job failed", zap.Strings("files", files), zap.Error(err))
			}
		case <-bg.done:
			return
		}
	}
}

func (bg *backgroundEvaluator) stop() {
	bg.once.Do(func() { close(bg.done) })
	bg.logger.Sync()
}
