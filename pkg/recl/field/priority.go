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

// Package field implements the record field model: Field, FieldMetadata,
// TypeAnnotation, PendingContract and Priority, plus the two field-level
// merge operations the record merge builds on: RevertClosurize and
// MergeFields.
package field

import "fmt"

type priorityTag int

const (
	priorityBottom priorityTag = iota
	priorityNeutral
	priorityTop
)

// Priority is a three-constructor tagged value: Bottom, Neutral(n), or
// Top, with the derived total order Bottom < Neutral(x) < Neutral(y)
// iff x<y < Top.
type Priority struct {
	tag priorityTag
	n   int
}

// Bottom is the lowest priority: any other priority wins over it.
func Bottom() Priority { return Priority{tag: priorityBottom} }

// Neutral is the ordinary, numerically-ranked priority tier.
func Neutral(n int) Priority { return Priority{tag: priorityNeutral, n: n} }

// Top is the highest priority: it wins over everything but another Top.
func Top() Priority { return Priority{tag: priorityTop} }

// DefaultPriority is the priority an absent field collision defaults to
// (the "neither present" case).
func DefaultPriority() Priority { return Neutral(0) }

// Compare returns a negative number if p sorts before o, zero if they
// are equal, and a positive number if p sorts after o.
func (p Priority) Compare(o Priority) int {
	if p.tag != o.tag {
		return int(p.tag) - int(o.tag)
	}
	if p.tag == priorityNeutral {
		return p.n - o.n
	}
	return 0
}

// Greater reports whether p strictly outranks o.
func (p Priority) Greater(o Priority) bool { return p.Compare(o) > 0 }

// Equal reports whether p and o occupy the same rank.
func (p Priority) Equal(o Priority) bool { return p.Compare(o) == 0 }

func (p Priority) String() string {
	switch p.tag {
	case priorityBottom:
		return "Bottom"
	case priorityTop:
		return "Top"
	default:
		return fmt.Sprintf("Neutral(%d)", p.n)
	}
}
