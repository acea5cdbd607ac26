// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package rpn evaluates postfix (Reverse Polish Notation) expressions such as
"x 5 <" or "4 !". It is the expression language of `%% if ... %%`
directives.

Tokens are whitespace-delimited. Each token is, in order of precedence:

  - the name of a variable known to the Resolver (replaced by its value),
  - a binary operator: + - * / ^ % > >= < <= == != and or
  - a function from Funcs (e.g. "!" for factorial, "sqrt", "pow"),
  - otherwise a numeric literal (integer or float).

Operands are kept on an explicit stack; the expression must leave exactly
one value on it.

Values are int64, float64, bool, string, or []interface{}; see Normalize.
*/
package rpn
