// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"carvel.dev/stpl/pkg/rpn"
)

const (
	// LoopIndexName is bound to the zero-based iteration index inside `for` bodies.
	LoopIndexName = "loopidx"

	DefaultMissingValue = "None"
)

// Scope is a chain of variable bindings. Lookups walk outward through
// parents; bindings are always written to the receiving scope.
type Scope struct {
	vars   map[string]interface{}
	parent *Scope
}

var _ rpn.Resolver = &Scope{}

// NewScope wraps vars (without copying) as a root scope.
func NewScope(vars map[string]interface{}) *Scope {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return &Scope{vars: vars}
}

func (s *Scope) Child(vars map[string]interface{}) *Scope {
	child := NewScope(vars)
	child.parent = s
	return child
}

func (s *Scope) Parent() *Scope { return s.parent }

func (s *Scope) Lookup(name string) (interface{}, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if val, found := scope.vars[name]; found {
			return val, true
		}
	}
	return nil, false
}

func (s *Scope) Bind(name string, val interface{}) {
	s.vars[name] = val
}

// EvaluationCtx carries state shared by all nodes during a single render.
type EvaluationCtx struct {
	Scope        *Scope
	MissingValue string
}

func (e *EvaluationCtx) missingValue() string {
	if len(e.MissingValue) == 0 {
		return DefaultMissingValue
	}
	return e.MissingValue
}
