// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/stpl/pkg/cmd/render"
	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/orderedmap"
	"carvel.dev/stpl/pkg/rpn"
	"carvel.dev/stpl/pkg/texttemplate"
	"github.com/spf13/cobra"
)

// EvalOptions evaluates a single RPN expression the same way
// "if" conditions are evaluated during rendering.
type EvalOptions struct {
	Debug           bool
	DataValuesFlags render.DataValuesFlags
}

func NewEvalOptions() *EvalOptions {
	return &EvalOptions{}
}

func NewEvalCmd(o *EvalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval EXPR",
		Short: "Evaluate RPN expression (e.g. 'x 2 * 1 +')",
		Args:  cobra.ExactArgs(1),
		RunE:  func(_ *cobra.Command, args []string) error { return o.Run(args[0]) },
	}
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	o.DataValuesFlags.Set(cmd.Flags())
	return cmd
}

func (o *EvalOptions) Run(expr string) error {
	return o.RunWithUI(expr, ui.NewTTY(o.Debug))
}

func (o *EvalOptions) RunWithUI(expr string, ui ui.UI) error {
	values, err := o.DataValuesFlags.Values()
	if err != nil {
		return err
	}

	vars := orderedmap.Conversion{Object: values}.AsUnorderedStringMaps().(map[string]interface{})

	ui.Debugf("expression: %s\n", expr)

	result, err := rpn.Evaluate(expr, rpn.Vars(vars))
	if err != nil {
		return err
	}

	ui.Printf("%s\n", texttemplate.ValueAsString(result, texttemplate.DefaultMissingValue))
	return nil
}
