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

package merge

import "github.com/recl-lang/recl/pkg/recl/cache"

// Options configures the tunable parts of Merge. The zero value is not
// ready to use — call DefaultOptions.
type Options struct {
	// NumericEpsilon is the tolerance used to decide whether two Number
	// values are "the same".
	NumericEpsilon float64
}

// DefaultOptions returns the epsilon this implementation settled on
// (see DESIGN.md's open-question decisions): cache.NumericEpsilon,
// looser than strict float equality.
func DefaultOptions() Options {
	return Options{NumericEpsilon: cache.NumericEpsilon}
}
