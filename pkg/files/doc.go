// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading templates and
data values from various file or file-like Source's, for writing rendered
output to filesystem files and directories, and for watching local files
for changes.

This allows the rest of stpl code to process templates without becoming
entangled in the details of how to read or write data.

Data values files are decoded according to their Type (YAML, JSON or TOML).
*/
package files
