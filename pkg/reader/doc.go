// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package reader provides a cursor over template text and the low-level
primitives the template parser and the RPN tokenizer are built from:
Peek, ReadUntil and Consume.

Every primitive either makes progress or fails with an *Error; none of them
silently skip input. Errors carry the byte Offset into the original source
so callers can turn them into line/column positions.
*/
package reader
