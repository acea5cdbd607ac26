// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a source name (usually a
template file), and a line and column within that source.

File positions are crucial when reporting errors to the user: every parse
and render error names the directive it came from by Position.

Not all Position point within a file (e.g. templates given inline on the
command-line). The zero-value of Position (can be created using
NewUnknownPosition()) represents this case.
*/
package filepos
