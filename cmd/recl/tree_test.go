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
	"bytes"
	"strings"
	"testing"

	"github.com/recl-lang/recl/internal/fixture"
	"github.com/recl-lang/recl/pkg/recl/cache"
)

func TestDoTreeIndentsNestedRecords(t *testing.T) {
	c := cache.New()
	rec, e, err := fixture.Parse(c, `
server:
  listen:
    port: 8080
  name: primary
enabled: true
`)
	if err != nil {
		t.Fatalf("fixture.Parse: %v", err)
	}

	var b bytes.Buffer
	if err := doTree(&b, rec, e, c); err != nil {
		t.Fatalf("doTree: %v", err)
	}

	out := b.String()
	for _, want := range []string{
		"server:\n",
		"  listen:\n",
		"    port: 8080\n",
		"  name: \"primary\"\n",
		"enabled: true\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doTree output missing %q; got:\n%s", want, out)
		}
	}
}

func TestDoNamesListsLeafPaths(t *testing.T) {
	c := cache.New()
	rec, e, err := fixture.Parse(c, `
server:
  listen:
    port: 8080
  name: primary
enabled: true
`)
	if err != nil {
		t.Fatalf("fixture.Parse: %v", err)
	}

	var b bytes.Buffer
	if err := doNames(&b, rec, e, c); err != nil {
		t.Fatalf("doNames: %v", err)
	}

	out := b.String()
	for _, want := range []string{"server.listen.port", "server.name", "enabled"} {
		if !strings.Contains(out, want) {
			t.Errorf("doNames output missing %q; got:\n%s", want, out)
		}
	}
}
