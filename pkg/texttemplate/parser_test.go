// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate_test

import (
	"errors"
	"testing"

	"carvel.dev/stpl/pkg/filepos"
	"carvel.dev/stpl/pkg/texttemplate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var posComparer = cmp.Comparer(func(a, b *filepos.Position) bool {
	return a.AsCompactString() == b.AsCompactString()
})

func pos(line, col int) *filepos.Position {
	return filepos.NewPositionInFile(line, col, "tpl")
}

func TestParserBuildsTree(t *testing.T) {
	src := "hi %% {{name}} %%!\n%% for x in xs %%%% if x 2 < %%<%%{{x}}%%>%% endif %%%% endfor %%tail"

	rootNode, err := texttemplate.NewParser().Parse([]byte(src), "tpl")
	require.NoError(t, err)

	expected := &texttemplate.NodeRoot{
		Position: pos(1, 1),
		Items: []texttemplate.Node{
			&texttemplate.NodeText{Position: pos(1, 1), Content: "hi "},
			&texttemplate.NodeVar{Position: pos(1, 4), Name: "name"},
			&texttemplate.NodeText{Position: pos(1, 18), Content: "!\n"},
			&texttemplate.NodeFor{
				Position: pos(2, 1),
				LoopVar:  "x",
				ListName: "xs",
				Body: &texttemplate.NodeRoot{
					Position: pos(2, 18),
					Items: []texttemplate.Node{
						&texttemplate.NodeIf{
							Position:  pos(2, 18),
							Condition: "x 2 <",
							Body: &texttemplate.NodeRoot{
								Position: pos(2, 32),
								Items: []texttemplate.Node{
									&texttemplate.NodeText{Position: pos(2, 32), Content: "<"},
									&texttemplate.NodeVar{Position: pos(2, 33), Name: "x"},
									&texttemplate.NodeText{Position: pos(2, 42), Content: ">"},
								},
							},
						},
					},
				},
			},
			&texttemplate.NodeText{Position: pos(2, 66), Content: "tail"},
		},
	}

	if diff := cmp.Diff(expected, rootNode, posComparer); diff != "" {
		t.Fatalf("unexpected tree (-expected +actual):\n%s", diff)
	}
}

func TestParserOmitsEmptyText(t *testing.T) {
	rootNode, err := texttemplate.NewParser().Parse([]byte("%%{{a}}%%%%{{b}}%%"), "tpl")
	require.NoError(t, err)

	require.Len(t, rootNode.Items, 2)
	assert.Equal(t, texttemplate.KindVar, rootNode.Items[0].Kind())
	assert.Equal(t, texttemplate.KindVar, rootNode.Items[1].Kind())
}

func TestParserEmptyTemplate(t *testing.T) {
	rootNode, err := texttemplate.NewParser().Parse(nil, "tpl")
	require.NoError(t, err)
	assert.Empty(t, rootNode.Items)
}

func TestParserNestedClosersMatchInnermostBlock(t *testing.T) {
	src := "%% if 1 %%%% if 0 %%a%% endif %%b%% endif %%c"

	rootNode, err := texttemplate.NewParser().Parse([]byte(src), "tpl")
	require.NoError(t, err)

	require.Len(t, rootNode.Items, 2)
	outer := rootNode.Items[0].(*texttemplate.NodeIf)
	require.Len(t, outer.Body.Items, 2)
	assert.Equal(t, "0", outer.Body.Items[0].(*texttemplate.NodeIf).Condition)
	assert.Equal(t, "b", outer.Body.Items[1].(*texttemplate.NodeText).Content)
	assert.Equal(t, "c", rootNode.Items[1].(*texttemplate.NodeText).Content)
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		kind error
		msg  string
	}{
		{"unterminated if", "%% if 1 %%", texttemplate.ErrDelimiterNotFound,
			"delimiter not found: missing '%% endif %%' for 'if' at line 1 col 1 in 'tpl'"},
		{"unterminated for", "%% for a in b %%x", texttemplate.ErrDelimiterNotFound,
			"delimiter not found: missing '%% endfor %%' for 'for' at line 1 col 1 in 'tpl'"},
		{"unterminated if header", "%% if 1", texttemplate.ErrDelimiterNotFound,
			"delimiter not found: missing '%%' closing 'if' condition at line 1 col 1 in 'tpl'"},
		{"unterminated var", "%% {{a}}", texttemplate.ErrUnexpectedToken,
			"unexpected token: expected '%%' but reached end of template after variable reference at line 1 col 9 in 'tpl'"},
		{"var close mismatch", "%% {{a}} x %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: expected '%%' but found 'x ' after variable reference at line 1 col 10 in 'tpl'"},
		{"empty var", "%% {{ }} %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name '' at line 1 col 6 in 'tpl'"},
		{"var with space", "%% {{a b}} %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name 'a b' at line 1 col 6 in 'tpl'"},
		{"var starting with digit", "%% {{ 9x }} %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name '9x' at line 1 col 6 in 'tpl'"},
		{"var with dash", "%% {{ a-b }} %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name 'a-b' at line 1 col 6 in 'tpl'"},
		{"var with brace", "%% {{a}b}} %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name 'a}b' at line 1 col 6 in 'tpl'"},
		{"numeric loop var", "%% for 1 in xs %%%%{{1}}%%%% endfor %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name '1' in 'for' header at line 1 col 8 in 'tpl'"},
		{"invalid list name", "%% for x in 9s %%x%% endfor %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: invalid variable name '9s' in 'for' header at line 1 col 13 in 'tpl'"},
		{"missing condition", "%% if %%x%% endif %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: missing 'if' condition at line 1 col 6 in 'tpl'"},
		{"stray endfor", "%% endfor %%", texttemplate.ErrUnexpectedToken,
			"unexpected token: unexpected 'endfor' without matching 'for' at line 1 col 1 in 'tpl'"},
		{"endif trailer", "%% if 1 %%%% endif x", texttemplate.ErrUnexpectedToken,
			"unexpected token: expected '%%' but found 'x' after 'endif' at line 1 col 20 in 'tpl'"},
		{"unknown", "%% while x %%", texttemplate.ErrUnknownDirective,
			"unknown directive: 'while' at line 1 col 1 in 'tpl'"},
		{"unknown with suggestion", "%% fro x in y %%", texttemplate.ErrUnknownDirective,
			"unknown directive: 'fro' (did you mean 'for'?) at line 1 col 1 in 'tpl'"},
		{"keyword prefix", "%% iffy %%", texttemplate.ErrUnknownDirective,
			"unknown directive: 'iffy' at line 1 col 1 in 'tpl'"},
		{"keyword typo", "x %% ednif %%", texttemplate.ErrUnknownDirective,
			"unknown directive: 'ednif' (did you mean 'endif'?) at line 1 col 3 in 'tpl'"},
		{"lone marker", "100%%", texttemplate.ErrUnknownDirective,
			"unknown directive: empty directive at line 1 col 4 in 'tpl'"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := texttemplate.NewParser().Parse([]byte(tc.src), "tpl")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "expected kind %q in %q", tc.kind, err)
			assert.Equal(t, tc.msg, err.Error())

			var tplErr *texttemplate.Error
			require.True(t, errors.As(err, &tplErr))
			assert.True(t, tplErr.Position.IsKnown())
		})
	}
}

func TestParserAcceptsIdentifiers(t *testing.T) {
	rootNode, err := texttemplate.NewParser().Parse([]byte("%% {{_a1}} %%%% for B_2 in _xs %%%% endfor %%"), "tpl")
	require.NoError(t, err)

	require.Len(t, rootNode.Items, 2)
	assert.Equal(t, "_a1", rootNode.Items[0].(*texttemplate.NodeVar).Name)
	assert.Equal(t, "B_2", rootNode.Items[1].(*texttemplate.NodeFor).LoopVar)
	assert.Equal(t, "_xs", rootNode.Items[1].(*texttemplate.NodeFor).ListName)
}

func TestAsDebugString(t *testing.T) {
	rootNode, err := texttemplate.NewParser().Parse([]byte("a\n%% for x in xs %%%% if x %%%%{{x}}%%%% endif %%%% endfor %%"), "tpl")
	require.NoError(t, err)

	expected := `(root) @ 1:1
  (text "a\n") @ 1:1
  (for x in xs) @ 2:1
    (root) @ 2:18
      (if "x") @ 2:18
        (root) @ 2:28
          (var x) @ 2:28
`
	assert.Equal(t, expected, rootNode.AsDebugString())
}
