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

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/term"
)

func TestAddStandardOptimizesEmptyDeps(t *testing.T) {
	c := New()
	idx := c.Add(term.Var{Name: "x"}, env.Empty(), KindOther, Revertible(nil))
	_, ok := c.Deps(idx)
	assert.False(t, ok, "empty-deps Revertible should have been optimized into Standard")
}

func TestRevertAllocatesFreshIndexAndClearsCurrent(t *testing.T) {
	c := New()
	orig := term.Var{Name: "a"}
	idx := c.Add(orig, env.Empty(), KindRecord, Revertible(map[string]bool{"a": true}))
	require.NoError(t, c.SetCurrent(idx, term.Var{Name: "evaluated"}))

	reverted, err := c.Revert(idx)
	require.NoError(t, err)
	assert.NotEqual(t, idx, reverted, "Revert must allocate a fresh index")

	old, _ := c.Get(idx)
	assert.NotNil(t, old.Current, "original entry's Current must be untouched by reverting a later index")

	ne, _ := c.Get(reverted)
	assert.Nil(t, ne.Current, "reverted entry's Current must be cleared")
	assert.Equal(t, orig, ne.Body, "reverted entry's Body must equal the original body")
	deps, ok := ne.Binding.Deps()
	require.True(t, ok)
	assert.True(t, deps["a"], "reverted entry must keep the same deps, got %v", deps)
}

func TestSaturateStandardIsIdentity(t *testing.T) {
	c := New()
	idx := c.Add(term.Var{Name: "k"}, env.Empty(), KindOther, Standard())

	got, err := c.Saturate(idx, map[string]env.Index{"k": 99})
	require.NoError(t, err)
	assert.Equal(t, idx, got, "Saturate on a Standard entry should return the same index")
}

func TestSaturateRevertibleRebindsDeclaredDepsOnly(t *testing.T) {
	c := New()
	base := env.Empty().Insert("a", 1).Insert("b", 2)
	idx := c.Add(term.Var{Name: "a"}, base, KindRecord, Revertible(map[string]bool{"a": true}))

	siblings := map[string]env.Index{"a": 42, "b": 43}
	got, err := c.Saturate(idx, siblings)
	require.NoError(t, err)
	assert.NotEqual(t, idx, got, "Saturate on a Revertible entry must revert to a fresh index")

	ne, _ := c.Get(got)
	aIdx, ok := ne.Env.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, env.Index(42), aIdx, "dependency %q should rebind to the sibling's current index", "a")
	// "b" is not in this entry's declared deps, so it must be untouched
	// even though it's also a current sibling.
	bIdx, ok := ne.Env.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, env.Index(2), bIdx, "non-dependency %q must not be rebound", "b")
}

func TestSaturateIgnoresDepsOutsideSiblingSet(t *testing.T) {
	c := New()
	base := env.Empty().Insert("a", 1)
	idx := c.Add(term.Var{Name: "a"}, base, KindRecord, Revertible(map[string]bool{"a": true, "c": true}))

	// "c" is a declared dependency but not a current sibling: it must be
	// left exactly as it was in the reverted entry's environment.
	got, err := c.Saturate(idx, map[string]env.Index{"a": 7})
	require.NoError(t, err)
	ne, _ := c.Get(got)
	_, ok := ne.Env.Lookup("c")
	assert.False(t, ok, "dependency %q absent from siblings must not appear rebound", "c")
}

func TestGetInvalidIndex(t *testing.T) {
	c := New()
	_, ok := c.Get(env.Index(0))
	assert.False(t, ok, "Get on empty cache should fail")

	_, err := c.Revert(env.Index(5))
	assert.Error(t, err, "Revert of out-of-range index should error")

	_, err = c.Saturate(env.Index(5), nil)
	assert.Error(t, err, "Saturate of out-of-range index should error")
}
