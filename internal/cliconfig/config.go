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

// Package cliconfig loads the optional YAML defaults file cmd/recl-lsp
// reads before applying its own flags: trace path and the
// --background-eval default. It never touches the merge core — a thin
// wrapper around koanf, the way the retrieved corpus's config loaders do.
package cliconfig

import (
	"fmt"
	"os"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults is cmd/recl-lsp's config-file shape. Flags always override
// whatever a config file sets; this struct only supplies starting
// values.
type Defaults struct {
	TracePath      string `koanf:"trace_path"`
	BackgroundEval bool   `koanf:"background_eval"`
	StackSizeBytes int    `koanf:"stack_size_bytes"`
}

// DefaultDefaults is what a missing or empty config file yields.
func DefaultDefaults() Defaults {
	return Defaults{
		TracePath:      "",
		BackgroundEval: false,
		StackSizeBytes: 8 << 20, // 8 MiB default evaluator goroutine stack size.
	}
}

// Load reads path as YAML into a Defaults, seeded with DefaultDefaults.
// An empty path is not an error — it means "use the defaults as-is".
func Load(path string) (Defaults, error) {
	d := DefaultDefaults()
	if path == "" {
		return d, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Defaults{}, fmt.Errorf("cliconfig: config file not found: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
		return Defaults{}, fmt.Errorf("cliconfig: loading %s: %w", path, err)
	}
	if err := k.Unmarshal("", &d); err != nil {
		return Defaults{}, fmt.Errorf("cliconfig: unmarshaling %s: %w", path, err)
	}
	return d, nil
}
