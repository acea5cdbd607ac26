// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

type RenderOpts struct {
	// MissingValue replaces references to undefined variables (defaults to DefaultMissingValue).
	MissingValue string
}

type Template struct {
	name string
	opts RenderOpts
}

func NewTemplate(name string, opts RenderOpts) *Template {
	return &Template{name: name, opts: opts}
}

func (t *Template) Name() string { return t.name }

func (t *Template) Parse(data []byte) (*NodeRoot, error) {
	return NewParser().Parse(data, t.name)
}

// Render produces the output of rootNode against scope. Loop variables
// bound while rendering remain in scope afterwards. No partial output
// is returned on error.
func (t *Template) Render(rootNode *NodeRoot, scope *Scope) (string, error) {
	if scope == nil {
		scope = NewScope(nil)
	}

	ctx := &EvaluationCtx{Scope: scope, MissingValue: t.opts.MissingValue}

	result, err := rootNode.Render(ctx)
	if err != nil {
		return "", err
	}
	return result, nil
}

// RenderString parses and renders src in one step.
func RenderString(src string, values map[string]interface{}) (string, error) {
	tpl := NewTemplate("", RenderOpts{})

	rootNode, err := tpl.Parse([]byte(src))
	if err != nil {
		return "", err
	}
	return tpl.Render(rootNode, NewScope(values))
}
