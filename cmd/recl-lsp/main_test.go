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
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/recl-lang/recl/pkg/recl/cache"
)

func noopLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestMergeJobMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.yaml", "server:\n  port: 80\n")
	b := writeFixture(t, dir, "b.yaml", "server:\n  name: primary\n")

	c := cache.New()
	rec, err := mergeJob(c, []string{a, b}, nil)
	if err != nil {
		t.Fatalf("mergeJob: %v", err)
	}
	if len(rec.Data.Keys) != 1 || rec.Data.Keys[0] != "server" {
		t.Fatalf("merged record keys = %v, want [server]", rec.Data.Keys)
	}
}

func TestMergeJobReportsMissingFile(t *testing.T) {
	c := cache.New()
	if _, err := mergeJob(c, []string{filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestBackgroundEvaluatorRunsJobsIndependently(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.yaml", "enabled: true\n")

	bg := newBackgroundEvaluator(noopLogger(t))
	defer bg.stop()
	bg.submit([]string{a})
}
