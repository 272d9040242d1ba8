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

package obslog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewBuildsALogger(t *testing.T) {
	logger, err := New(false)
	if err != nil {
		t.Fatalf("New(false): %v", err)
	}
	if logger == nil {
		t.Fatal("New returned a nil logger")
	}
	defer logger.Sync()
}

func TestNewBackgroundEvalWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "background-eval.log")
	logger := NewBackgroundEval(DefaultBackgroundEvalConfig(path))
	if logger == nil {
		t.Fatal("NewBackgroundEval returned a nil logger")
	}
	logger.Info("evaluator started")
	_ = logger.Sync()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not written at %s: %v", path, err)
	}
}
