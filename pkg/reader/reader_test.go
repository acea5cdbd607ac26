// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package reader_test

import (
	"errors"
	"testing"

	"carvel.dev/stpl/pkg/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeek(t *testing.T) {
	r := reader.NewReader("%% if")

	assert.Equal(t, "%% i", r.Peek(4))
	assert.Equal(t, "%% if", r.Peek(100))
	assert.Equal(t, "", r.Peek(0))
	assert.Equal(t, 0, r.Offset(), "peek must not consume")

	multiByte := reader.NewReader("héllo")
	assert.Equal(t, "hé", multiByte.Peek(2))
}

func TestReadUntil(t *testing.T) {
	t.Run("returns text before the delimiter and stops on it", func(t *testing.T) {
		r := reader.NewReader("hello %% {{name}} %%")

		txt, err := r.ReadUntil("%%")
		require.NoError(t, err)
		assert.Equal(t, "hello ", txt)
		assert.Equal(t, "%% {{name}} %%", r.Rest())
	})

	t.Run("delimiter at cursor yields empty text", func(t *testing.T) {
		r := reader.NewReader("%%x")

		txt, err := r.ReadUntil("%%")
		require.NoError(t, err)
		assert.Equal(t, "", txt)
		assert.Equal(t, 0, r.Offset())
	})

	t.Run("missing delimiter is a typed error", func(t *testing.T) {
		r := reader.NewReader("abc")
		require.NoError(t, r.Consume("a"))

		_, err := r.ReadUntil("%%")
		require.Error(t, err)
		assert.True(t, errors.Is(err, reader.ErrDelimiterNotFound))

		var readerErr *reader.Error
		require.True(t, errors.As(err, &readerErr))
		assert.Equal(t, 1, readerErr.Offset)
		assert.Equal(t, "delimiter not found: expected '%%'", err.Error())
		assert.Equal(t, "bc", r.Rest(), "failed read must not move the cursor")
	})
}

func TestConsume(t *testing.T) {
	t.Run("matching prefix", func(t *testing.T) {
		r := reader.NewReader("endif %%")
		require.NoError(t, r.Consume("endif"))
		assert.Equal(t, " %%", r.Rest())
	})

	t.Run("mismatched prefix fails without dropping input", func(t *testing.T) {
		r := reader.NewReader("endfor %%")

		err := r.Consume("endif")
		require.Error(t, err)
		assert.True(t, errors.Is(err, reader.ErrUnexpectedToken))
		assert.Equal(t, "unexpected token: expected 'endif' but found 'endfo'", err.Error())
		assert.Equal(t, "endfor %%", r.Rest())
	})

	t.Run("end of input", func(t *testing.T) {
		r := reader.NewReader("")

		err := r.Consume("%%")
		require.Error(t, err)
		assert.Equal(t, "unexpected token: expected '%%' but reached end of input", err.Error())
	})
}

func TestReadToken(t *testing.T) {
	r := reader.NewReader("  3 5\t<  ")

	var tokens []string
	for tok := r.ReadToken(); tok != ""; tok = r.ReadToken() {
		tokens = append(tokens, tok)
	}

	assert.Equal(t, []string{"3", "5", "<"}, tokens)
	assert.True(t, r.Done())
}

func TestSkipSpace(t *testing.T) {
	r := reader.NewReader(" \n\t x")
	r.SkipSpace()
	assert.Equal(t, "x", r.Rest())
	assert.Equal(t, 4, r.Offset())
}

func TestIsIdentifier(t *testing.T) {
	for _, name := range []string{"a", "_", "x1", "loop_idx", "B_2"} {
		assert.True(t, reader.IsIdentifier(name), name)
	}
	for _, name := range []string{"", "1", "9x", "a-b", "a}b", "a b", "é", "1.5"} {
		assert.False(t, reader.IsIdentifier(name), name)
	}
}
