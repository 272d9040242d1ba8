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

import "github.com/recl-lang/recl/pkg/recl/diag"

// Mode is Standard (symmetric record combination) or Contract(label)
// (t1 is the checked value, t2 the contract; not commutative). An
// explicit tagged value, rather than a bare bool, follows
// pkg/yang/options.go's DeviateOptions/DeviateOpt precedent of naming a
// mode instead of overloading a flag.
type Mode struct {
	contract bool
	label    diag.Label
}

// Standard returns the symmetric merge mode.
func Standard() Mode { return Mode{} }

// Contract returns contract-checking mode with the given blame label.
func Contract(label diag.Label) Mode { return Mode{contract: true, label: label} }

// IsContract reports whether m is Contract mode.
func (m Mode) IsContract() bool { return m.contract }

// Label returns the blame label carried by a Contract mode; the zero
// Label for Standard.
func (m Mode) Label() diag.Label { return m.label }
