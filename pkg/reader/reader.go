// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package reader

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reader is a cursor over the unconsumed remainder of src.
type Reader struct {
	src    string
	offset int
}

func NewReader(src string) *Reader {
	return &Reader{src: src}
}

// Source returns the full text the reader was created with.
func (r *Reader) Source() string { return r.src }

// Offset is the byte offset of the cursor within Source.
func (r *Reader) Offset() int { return r.offset }

func (r *Reader) Rest() string { return r.src[r.offset:] }
func (r *Reader) Len() int     { return len(r.src) - r.offset }
func (r *Reader) Done() bool   { return r.offset >= len(r.src) }

// Peek returns up to the next n characters without consuming them.
func (r *Reader) Peek(n int) string {
	rest := r.Rest()
	end := 0
	for i := 0; i < n && end < len(rest); i++ {
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
	}
	return rest[:end]
}

// Index reports the position of delim relative to the cursor, or -1.
func (r *Reader) Index(delim string) int {
	return strings.Index(r.Rest(), delim)
}

// ReadUntil returns the text up to (excluding) the first occurrence of
// delim and moves the cursor onto delim. The cursor does not move on error.
func (r *Reader) ReadUntil(delim string) (string, error) {
	idx := r.Index(delim)
	if idx < 0 {
		return "", &Error{Kind: ErrDelimiterNotFound, Offset: r.offset, Expected: delim}
	}
	result := r.src[r.offset : r.offset+idx]
	r.offset += idx
	return result, nil
}

// Consume removes literal from the front of the remaining text.
func (r *Reader) Consume(literal string) error {
	if !strings.HasPrefix(r.Rest(), literal) {
		return &Error{
			Kind:     ErrUnexpectedToken,
			Offset:   r.offset,
			Expected: literal,
			Found:    r.Peek(utf8.RuneCountInString(literal)),
		}
	}
	r.offset += len(literal)
	return nil
}

// SkipSpace consumes any leading whitespace.
func (r *Reader) SkipSpace() {
	trimmed := strings.TrimLeftFunc(r.Rest(), unicode.IsSpace)
	r.offset += r.Len() - len(trimmed)
}

// ReadToken skips leading whitespace and returns the next
// whitespace-delimited token; it returns "" once input is exhausted.
func (r *Reader) ReadToken() string {
	r.SkipSpace()
	rest := r.Rest()
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	r.offset += end
	return rest[:end]
}

// IsIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch == '_', 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		case '0' <= ch && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
