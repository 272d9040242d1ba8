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

// Package merge implements the merge combinator: the operation that
// takes two already-evaluated closures and combines them into one,
// either by matching atomic values or by recursively combining a
// record's fields.
//
// At its simplest, Merge is called directly:
//
//	result, err := merge.Merge(t1, t2, posOp, merge.Standard(), cache, stack, merge.DefaultOptions())
//	if err != nil {
//		var blame *diag.BlameError
//		if errors.As(err, &blame) {
//			fmt.Fprintln(os.Stderr, blame)
//		}
//		return err
//	}
//
// Both t1 and t2 must already be forced to head-normal form by the
// caller; Merge never forces anything itself, and performs no I/O.
//
// Record merges run in one of two modes (see Mode): Standard combines
// two records symmetrically, field by field, by priority; Contract
// checks a value against a record used as a contract, which is not
// commutative and can fail with a blame error carrying a diagnostic
// label.
//
// Package field implements the field-level combination rules Merge
// calls into for each pair of same-named fields; package cache and
// package env hold the recursive-value store and the binding
// environment that let a merged record's fields observe overrides made
// to their siblings.
package merge
