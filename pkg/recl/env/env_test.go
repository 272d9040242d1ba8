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

package env

import (
	"testing"
)

func TestLookupUnbound(t *testing.T) {
	e := Empty()
	if _, ok := e.Lookup("a"); ok {
		t.Fatalf("Lookup on empty env should fail")
	}
}

func TestInsertShadows(t *testing.T) {
	id := "a"

	e := Empty().Insert(id, 1)
	if idx, ok := e.Lookup(id); !ok || idx != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", idx, ok)
	}

	e2 := e.Insert(id, 2)
	if idx, ok := e2.Lookup(id); !ok || idx != 2 {
		t.Fatalf("shadowing insert: got (%v, %v), want (2, true)", idx, ok)
	}
	// e itself must be unaffected: environments are persistent.
	if idx, ok := e.Lookup(id); !ok || idx != 1 {
		t.Fatalf("original env mutated: got (%v, %v), want (1, true)", idx, ok)
	}
}

func TestExtendShadowsParent(t *testing.T) {
	a, b := "a", "b"

	base := Empty().Insert(a, 10).Insert(b, 20)
	override := Empty().Insert(b, 99)

	merged := base.Extend(override)

	if idx, ok := merged.Lookup(a); !ok || idx != 10 {
		t.Fatalf("a: got (%v, %v), want (10, true)", idx, ok)
	}
	if idx, ok := merged.Lookup(b); !ok || idx != 99 {
		t.Fatalf("b: got (%v, %v), want (99, true)", idx, ok)
	}
}

func TestIterVisitsInnermostOnly(t *testing.T) {
	id := "a"

	e := Empty().Insert(id, 1).Insert(id, 2)

	count := 0
	var got Index
	e.Iter(func(gotID string, idx Index) {
		if gotID == id {
			count++
			got = idx
		}
	})
	if count != 1 {
		t.Fatalf("Iter visited %q %d times, want 1", id, count)
	}
	if got != 2 {
		t.Fatalf("Iter reported index %v, want 2 (innermost binding)", got)
	}
}
