// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package texttemplate implements templating of plain text with `%%` directives:

	hello %% {{ name }} %%
	%% for lang in langs %%
	  %% if loopidx 0 > %%, %% endif %%%% {{ lang }} %%
	%% endfor %%

Parser turns template text into a tree of Node (NodeRoot, NodeText, NodeVar,
NodeIf, NodeFor). Each Node renders itself given an EvaluationCtx, whose Scope
holds the variables. `if` conditions are RPN expressions (see package rpn).

Loops bind the loop variable and LoopIndexName directly into the Scope they
are rendered with; those bindings remain visible after the loop completes.
*/
package texttemplate
