// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package spell provides the ability to suggest an exact spelling of a word.

In the context of stpl, this is useful for errors that involve misspelled
directive keywords (e.g. "endfi") and RPN function names (e.g. "sqr").
*/
package spell
