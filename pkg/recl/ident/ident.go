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

// Package ident generates fresh identifiers for the merge engine.
//
// fieldsMergeClosurize needs an identifier for every recursive field it
// hoists into the cache under a fresh binding. Freshness only has to hold
// globally, not per merge call, so one atomic counter per Source is
// enough: no two calls on the same Source ever observe the same value,
// and package merge draws every identifier from a single shared Source.
package ident

import "sync/atomic"

// ID is an opaque, comparable identifier minted by a Source.
type ID uint64

// String renders id in the conventional "%<n>" form used for
// machine-generated identifiers, so it can't collide with anything a
// surface parser could have produced.
func (id ID) String() string {
	return "%" + itoa(uint64(id))
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Source issues fresh IDs, unique among those this Source has issued;
// separate Sources count independently. The zero value is ready to use.
type Source struct {
	counter uint64
}

// Fresh returns an identifier that no prior or concurrent call on this
// Source has returned.
func (s *Source) Fresh() ID {
	return ID(atomic.AddUint64(&s.counter, 1))
}
