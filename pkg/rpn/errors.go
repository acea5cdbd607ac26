// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package rpn

import (
	"fmt"
)

// Kind classifies evaluation failures so that callers can match them with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrInvalidOperand      Kind = "invalid operand"
	ErrMalformedExpression Kind = "malformed expression"
	ErrArithmetic          Kind = "arithmetic error"
)

type Error struct {
	Kind  Kind
	Expr  string
	Token string
	Index int // of Token within Expr, 0 based
	Msg   string
}

var _ error = &Error{}

func (e *Error) Error() string {
	if len(e.Token) == 0 {
		return fmt.Sprintf("%s: %s (in '%s')", e.Kind, e.Msg, e.Expr)
	}
	return fmt.Sprintf("%s: token %d '%s': %s (in '%s')", e.Kind, e.Index+1, e.Token, e.Msg, e.Expr)
}

func (e *Error) Unwrap() error { return e.Kind }

// opError is returned by operators and functions; the evaluator
// attaches the expression and token to it.
type opError struct {
	kind Kind
	msg  string
}

func (e opError) Error() string { return e.msg }

func arithmeticErr(format string, args ...interface{}) error {
	return opError{ErrArithmetic, fmt.Sprintf(format, args...)}
}

func operandErr(format string, args ...interface{}) error {
	return opError{ErrInvalidOperand, fmt.Sprintf(format, args...)}
}
