// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"carvel.dev/stpl/pkg/filepos"
	"carvel.dev/stpl/pkg/rpn"
)

type NodeKind string

const (
	KindRoot NodeKind = "root"
	KindText NodeKind = "text"
	KindVar  NodeKind = "var"
	KindIf   NodeKind = "if"
	KindFor  NodeKind = "for"
)

// Node is a piece of a parsed template. Nodes form a strict tree: a node
// is never the child of more than one parent.
type Node interface {
	Kind() NodeKind
	Children() []Node
	GetPosition() *filepos.Position
	Render(ctx *EvaluationCtx) (string, error)
}

// NodeRoot is the top-level node of a template and the container of
// `if` and `for` bodies.
type NodeRoot struct {
	Position *filepos.Position
	Items    []Node
}

type NodeText struct {
	Position *filepos.Position
	Content  string
}

type NodeVar struct {
	Position *filepos.Position
	Name     string
}

type NodeIf struct {
	Position  *filepos.Position
	Condition string
	Body      *NodeRoot
}

type NodeFor struct {
	Position *filepos.Position
	LoopVar  string
	ListName string
	Body     *NodeRoot
}

var _ = []Node{&NodeRoot{}, &NodeText{}, &NodeVar{}, &NodeIf{}, &NodeFor{}}

func (n *NodeRoot) Kind() NodeKind { return KindRoot }
func (n *NodeText) Kind() NodeKind { return KindText }
func (n *NodeVar) Kind() NodeKind  { return KindVar }
func (n *NodeIf) Kind() NodeKind   { return KindIf }
func (n *NodeFor) Kind() NodeKind  { return KindFor }

func (n *NodeRoot) Children() []Node { return n.Items }
func (n *NodeText) Children() []Node { return nil }
func (n *NodeVar) Children() []Node  { return nil }
func (n *NodeIf) Children() []Node   { return []Node{n.Body} }
func (n *NodeFor) Children() []Node  { return []Node{n.Body} }

func (n *NodeRoot) GetPosition() *filepos.Position { return n.Position }
func (n *NodeText) GetPosition() *filepos.Position { return n.Position }
func (n *NodeVar) GetPosition() *filepos.Position  { return n.Position }
func (n *NodeIf) GetPosition() *filepos.Position   { return n.Position }
func (n *NodeFor) GetPosition() *filepos.Position  { return n.Position }

func (n *NodeRoot) Render(ctx *EvaluationCtx) (string, error) {
	var result strings.Builder
	for _, item := range n.Items {
		out, err := item.Render(ctx)
		if err != nil {
			return "", err
		}
		result.WriteString(out)
	}
	return result.String(), nil
}

func (n *NodeText) Render(_ *EvaluationCtx) (string, error) { return n.Content, nil }

func (n *NodeVar) Render(ctx *EvaluationCtx) (string, error) {
	val, found := ctx.Scope.Lookup(n.Name)
	if !found {
		return ctx.missingValue(), nil
	}
	return ValueAsString(val, ctx.missingValue()), nil
}

func (n *NodeIf) Render(ctx *EvaluationCtx) (string, error) {
	result, err := rpn.Evaluate(n.Condition, ctx.Scope)
	if err != nil {
		var kind error
		var rpnErr *rpn.Error
		if errors.As(err, &rpnErr) {
			kind = rpnErr.Kind
		}
		return "", &Error{Kind: kind, Position: n.Position, Fragment: n.Condition, Err: err}
	}
	if !rpn.Truthy(result) {
		return "", nil
	}
	return n.Body.Render(ctx)
}

func (n *NodeFor) Render(ctx *EvaluationCtx) (string, error) {
	val, found := ctx.Scope.Lookup(n.ListName)
	if !found {
		return "", &Error{
			Kind:     ErrUndefinedSequence,
			Position: n.Position,
			Fragment: n.ListName,
			Msg:      fmt.Sprintf("'%s' is not defined", n.ListName),
		}
	}

	items, ok := rpn.Normalize(val).([]interface{})
	if !ok {
		return "", &Error{
			Kind:     ErrUndefinedSequence,
			Position: n.Position,
			Fragment: n.ListName,
			Msg:      fmt.Sprintf("'%s' is a %T, not a sequence", n.ListName, val),
		}
	}

	var result strings.Builder
	for idx, item := range items {
		ctx.Scope.Bind(LoopIndexName, int64(idx))
		ctx.Scope.Bind(n.LoopVar, item)

		out, err := n.Body.Render(ctx)
		if err != nil {
			return "", err
		}
		result.WriteString(out)
	}
	return result.String(), nil
}

// AsDebugString shows the tree structure of the node, one node per line.
func (n *NodeRoot) AsDebugString() string {
	var result strings.Builder
	writeDebugNode(&result, n, 0)
	return result.String()
}

func writeDebugNode(out *strings.Builder, node Node, lvl int) {
	out.WriteString(strings.Repeat("  ", lvl))

	switch typedNode := node.(type) {
	case *NodeRoot:
		out.WriteString("(root)")
	case *NodeText:
		fmt.Fprintf(out, "(text %s)", strconv.Quote(typedNode.Content))
	case *NodeVar:
		fmt.Fprintf(out, "(var %s)", typedNode.Name)
	case *NodeIf:
		fmt.Fprintf(out, "(if %s)", strconv.Quote(typedNode.Condition))
	case *NodeFor:
		fmt.Fprintf(out, "(for %s in %s)", typedNode.LoopVar, typedNode.ListName)
	default:
		panic(fmt.Sprintf("unknown template node %T", typedNode))
	}

	if pos := node.GetPosition(); pos.IsKnown() {
		fmt.Fprintf(out, " @ %d:%d", pos.LineNum(), pos.ColNum())
	}
	out.WriteString("\n")

	for _, child := range node.Children() {
		writeDebugNode(out, child, lvl+1)
	}
}
