// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/stpl/pkg/cmd/render"
	"carvel.dev/stpl/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type StplOptions struct{}

func NewDefaultStplOptions() *StplOptions {
	return &StplOptions{}
}

func NewDefaultStplCmd() *cobra.Command {
	return NewStplCmd(NewDefaultStplOptions())
}

func NewStplCmd(o *StplOptions) *cobra.Command {
	cmd := NewRenderCmd(render.NewOptions())

	cmd.Use = "stpl"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "stpl renders %% text templates"
	cmd.Long = `stpl renders %% text templates.

Templates are plain text with directives between %% markers:

  %% {{name}} %%              substitutes a data value
  %% if x 5 < %% ... %% endif %%  renders the body when the RPN condition holds
  %% for x in xs %% ... %% endfor %%  renders the body once per item`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewRenderCmd(render.NewOptions()))
	cmd.AddCommand(NewAstCmd(NewAstOptions()))
	cmd.AddCommand(NewEvalCmd(NewEvalOptions()))
	cmd.AddCommand(NewWebsiteCmd(NewWebsiteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, disallowExtraArgsUnlessDeclared,
		cobrautil.ReconfigureCmdWithSubcmd, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

// disallowExtraArgsUnlessDeclared leaves commands with positional
// arguments (e.g. "eval EXPR") alone.
func disallowExtraArgsUnlessDeclared(cmd *cobra.Command) {
	if cmd.Args != nil {
		return
	}
	cobrautil.DisallowExtraArgs(cmd)
}
