// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"fmt"
)

// Kind classifies failures so that callers can match them with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ErrDelimiterNotFound Kind = "delimiter not found"
	ErrUnexpectedToken   Kind = "unexpected token"
)

type Error struct {
	Kind     Kind
	Offset   int
	Expected string
	Found    string
}

var _ error = &Error{}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrDelimiterNotFound:
		return fmt.Sprintf("%s: expected '%s'", e.Kind, e.Expected)
	case ErrUnexpectedToken:
		if len(e.Found) == 0 {
			return fmt.Sprintf("%s: expected '%s' but reached end of input", e.Kind, e.Expected)
		}
		return fmt.Sprintf("%s: expected '%s' but found '%s'", e.Kind, e.Expected, e.Found)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Kind }
