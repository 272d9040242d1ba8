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

package field

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// CompileContract compiles expr (a boolean predicate over a single
// variable "value") into a Contract. Merge never calls this: it is the
// concrete representation a contract-function implementation (evaluated
// elsewhere, outside the merge engine) would plug in, so that pending
// contracts carried through a merge are something more than an inert
// placeholder in tests and example wiring.
func CompileContract(env *cel.Env, expr string) (Contract, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling contract %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("building program for contract %q: %w", expr, err)
	}
	return prg, nil
}

// NewContractEnv builds the minimal cel.Env pending contracts in this
// repository's tests and fixtures are compiled against: a single
// dynamically-typed variable named "value".
func NewContractEnv() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable("value", cel.DynType))
}
