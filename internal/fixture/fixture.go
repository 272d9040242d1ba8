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

// Package fixture loads a YAML-described tree of plain values into a
// value.Record, wiring each leaf and nested record through a
// cache.Cache the way merge output itself is shaped. It exists so
// table-driven tests can describe a record declaratively instead of
// hand-assembling cache.Add/env.Insert calls, the way
// internal/tracecsv's afero.Fs lets tests swap a real filesystem for an
// in-memory one.
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/recl-lang/recl/pkg/recl/cache"
	"github.com/recl-lang/recl/pkg/recl/env"
	"github.com/recl-lang/recl/pkg/recl/field"
	"github.com/recl-lang/recl/pkg/recl/term"
	"github.com/recl-lang/recl/pkg/recl/value"
)

// Parse reads a YAML mapping (nested maps become nested records, scalars
// become Number/String/Bool/Null leaves) and builds the equivalent
// value.Record, registering every field's value in c and binding it into
// the returned environment under a fresh name per field.
//
// YAML sequences and any non-mapping top-level document are rejected: a
// fixture describes a record, and a record is required at the top of
// any merge.
func Parse(c *cache.Cache, yamlSource string) (value.Record, *env.Env, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(yamlSource), &raw); err != nil {
		return value.Record{}, nil, fmt.Errorf("fixture: parsing YAML: %w", err)
	}
	e := env.Empty()
	rec, e, err := buildRecord(c, e, raw)
	if err != nil {
		return value.Record{}, nil, err
	}
	return rec, e, nil
}

func buildRecord(c *cache.Cache, e *env.Env, raw map[string]any) (value.Record, *env.Env, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	fields := make(map[string]*field.Field, len(raw))

	for _, k := range keys {
		t, childEnv, err := buildTerm(c, e, raw[k])
		if err != nil {
			return value.Record{}, nil, fmt.Errorf("fixture: field %q: %w", k, err)
		}
		e = childEnv
		idx := c.Add(t.body, t.env, t.kind, cache.Standard())
		name := fmt.Sprintf("fixture_%s_%d", k, idx)
		e = e.Insert(name, idx)
		fields[k] = &field.Field{Value: term.Var{Name: name}, Metadata: field.FieldMetadata{Priority: field.DefaultPriority()}}
	}

	return value.Record{Data: value.RecordData{Fields: fields, Keys: keys}}, e, nil
}

// builtTerm bundles a term with the environment it must be cached under,
// so nested records can be registered a level at a time.
type builtTerm struct {
	body term.Term
	env  *env.Env
	kind cache.ValueKind
}

func buildTerm(c *cache.Cache, e *env.Env, raw any) (builtTerm, *env.Env, error) {
	switch v := raw.(type) {
	case nil:
		return builtTerm{body: value.Null{}, env: env.Empty(), kind: cache.KindOther}, e, nil
	case bool:
		return builtTerm{body: value.Bool{Val: v}, env: env.Empty(), kind: cache.KindOther}, e, nil
	case string:
		return builtTerm{body: value.String{Val: v}, env: env.Empty(), kind: cache.KindOther}, e, nil
	case int:
		return builtTerm{body: value.Number{Val: float64(v)}, env: env.Empty(), kind: cache.KindOther}, e, nil
	case float64:
		return builtTerm{body: value.Number{Val: v}, env: env.Empty(), kind: cache.KindOther}, e, nil
	case map[string]any:
		rec, e2, err := buildRecord(c, e, v)
		if err != nil {
			return builtTerm{}, nil, err
		}
		return builtTerm{body: rec, env: e2, kind: cache.KindRecord}, e2, nil
	default:
		return builtTerm{}, nil, fmt.Errorf("fixture: unsupported YAML value %#v (%T)", raw, raw)
	}
}
