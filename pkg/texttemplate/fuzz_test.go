// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate_test

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"carvel.dev/stpl/pkg/texttemplate"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var templatePieces = []string{
	"%%", " %% ", "{{", "}}", "{{x}}", " if ", " for ", " in ", "endif", "endfor",
	"x", "xs", "loopidx", "1", "0", " 5 < ", " + ", "a", "\n", " ", "%", "}", "{",
}

func TestParseAndRenderFuzzedTemplates(t *testing.T) {
	randSource := getRandSource(t)

	fuzzTemplate := fuzz.New().RandSource(randSource).Funcs(func(s *string, c fuzz.Continue) {
		var pieces []string
		for i := c.Intn(30); i > 0; i-- {
			pieces = append(pieces, templatePieces[c.Intn(len(templatePieces))])
		}
		*s = strings.Join(pieces, "")
	})

	knownKinds := []error{
		texttemplate.ErrDelimiterNotFound,
		texttemplate.ErrUnexpectedToken,
		texttemplate.ErrUnknownDirective,
		texttemplate.ErrUndefinedSequence,
		texttemplate.ErrInvalidOperand,
		texttemplate.ErrMalformedExpression,
		texttemplate.ErrArithmetic,
	}

	for i := 0; i < 500; i++ {
		var src string
		fuzzTemplate.Fuzz(&src)

		values := map[string]interface{}{"x": 3, "xs": []interface{}{1, 2}}

		out, err := texttemplate.RenderString(src, values)
		if err != nil {
			assert.Empty(t, out, "template %q", src)

			var matched bool
			for _, kind := range knownKinds {
				if errors.Is(err, kind) {
					matched = true
					break
				}
			}
			assert.True(t, matched, "template %q produced unclassified error: %s", src, err)
			continue
		}

		if !strings.Contains(src, texttemplate.Marker) {
			require.Equal(t, src, out, "template without markers must render verbatim")
		}
	}
}

func TestMarkerFreeTemplatesRenderVerbatim(t *testing.T) {
	randSource := getRandSource(t)

	fuzzText := fuzz.New().RandSource(randSource).Funcs(func(s *string, c fuzz.Continue) {
		*s = c.RandString()
		for strings.Contains(*s, texttemplate.Marker) {
			*s = strings.ReplaceAll(*s, texttemplate.Marker, "%")
		}
	})

	for i := 0; i < 200; i++ {
		var src string
		fuzzText.Fuzz(&src)

		out, err := texttemplate.RenderString(src, nil)
		require.NoError(t, err)
		require.Equal(t, src, out)
	}
}

func getRandSource(t *testing.T) rand.Source {
	var seed int64
	if os.Getenv("STPL_SEED") == "" {
		seed = time.Now().UnixNano()
	} else {
		envSeed, err := strconv.Atoi(os.Getenv("STPL_SEED"))
		require.NoError(t, err)
		seed = int64(envSeed)
	}

	t.Log(fmt.Sprintf("Seed used was: [%v]. To reproduce this test failure, re-run the test with `export STPL_SEED=%v`", seed, seed))

	return rand.NewSource(seed)
}
