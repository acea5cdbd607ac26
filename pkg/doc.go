// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of stpl.

Packages depend on each other only to the degree absolutely required. In the
inventory, below, individual packages are named alongside their coupling with
the other packages in the codebase.

	(# of dependents) => <package name> => (# of dependencies)

From top-down, stpl code is layered in this way:

# Entry Point

stpl is built into three executable formats:

	./cmd/stpl                  // a command-line tool
	./cmd/stpl-lambda-website   // an AWS Lambda function
	./cmd/stpl-wasm             // a WebAssembly module

stpl contains a mini website that is the "Playground" and a JSON rendering API.

	(1) => pkg/website => (0)

# Commands

The most commonly used command is "render" (also the root command).

	(2) => pkg/cmd => (8)
	(2) => pkg/cmd/render => (5)

# Templating

Templates are plain text with directives between "%%" markers. Each template is
parsed into a tree of nodes which is then rendered against a scope of values.
Conditions are expressions in reverse Polish notation.

	(3) => pkg/texttemplate => (4)
	(2) => pkg/rpn => (2)
	(2) => pkg/reader => (0)

# Utilities

The remainder are domain-agnostic utilities that provide either an
application-level capability or a specialized piece of logic.

	(3) => pkg/files => (0)
	(3) => pkg/cmd/ui => (1)
	(4) => pkg/orderedmap => (0)
	(2) => pkg/version => (0)
	(2) => pkg/spell => (0)
	(1) => pkg/filepos => (0)

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/cmd/render
	- pkg/cmd/ui
	- pkg/files
	- pkg/orderedmap
	- pkg/rpn
	- pkg/texttemplate
	- pkg/version
	- pkg/website
	pkg/cmd/render:
	- pkg/cmd/ui
	- pkg/files
	- pkg/orderedmap
	- pkg/texttemplate
	- pkg/version
	pkg/cmd/ui:
	- pkg/files
	pkg/texttemplate:
	- pkg/filepos
	- pkg/reader
	- pkg/rpn
	- pkg/spell
	pkg/rpn:
	- pkg/reader
	- pkg/spell
*/
package pkg
