// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"

	"carvel.dev/stpl/pkg/filepos"
	"carvel.dev/stpl/pkg/reader"
	"carvel.dev/stpl/pkg/rpn"
)

// Kind classifies template failures so that callers can match them with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrUnknownDirective  Kind = "unknown directive"
	ErrUndefinedSequence Kind = "undefined sequence"

	ErrDelimiterNotFound = reader.ErrDelimiterNotFound
	ErrUnexpectedToken   = reader.ErrUnexpectedToken

	ErrInvalidOperand      = rpn.ErrInvalidOperand
	ErrMalformedExpression = rpn.ErrMalformedExpression
	ErrArithmetic          = rpn.ErrArithmetic
)

// Error reports a parse or render failure at a Position within a template.
type Error struct {
	Kind     error
	Position *filepos.Position
	Fragment string // offending template text, when known
	Msg      string
	Err      error
}

var _ error = &Error{}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.Kind != nil && len(e.Msg) > 0:
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		msg = e.Err.Error()
	case e.Kind != nil:
		msg = e.Kind.Error()
	default:
		msg = e.Msg
	}
	return fmt.Sprintf("%s at %s", msg, e.Position.AsString())
}

func (e *Error) Unwrap() []error {
	var result []error
	for _, err := range []error{e.Kind, e.Err} {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
