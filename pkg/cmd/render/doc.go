// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package render implements the "render" command: it collects templates
(from files or bulk JSON input), layers data values from flags into a
single context, renders each template and writes the results.

It does not depend on cobra; see package cmd for the command itself.
*/
package render
