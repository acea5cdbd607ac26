// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/stpl/pkg/cmd"
	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/rpn"
	"carvel.dev/stpl/pkg/texttemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStplCmdRejectsExtraArgs(t *testing.T) {
	stplCmd := cmd.NewDefaultStplCmd()
	stplCmd.SetArgs([]string{"render", "extra"})

	err := stplCmd.Execute()
	require.EqualError(t, err, "command 'stpl render' does not accept extra arguments 'extra'")
}

func TestStplCmdRejectsUnknownFlags(t *testing.T) {
	stplCmd := cmd.NewDefaultStplCmd()
	stplCmd.SetArgs([]string{"--nope"})
	stplCmd.SetErr(bytes.NewBufferString(""))

	err := stplCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --nope")
}

func TestEvalCmdRequiresExpression(t *testing.T) {
	stplCmd := cmd.NewDefaultStplCmd()
	stplCmd.SetArgs([]string{"eval"})

	err := stplCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
}

func TestEval(t *testing.T) {
	stdout := bytes.NewBufferString("")
	tty := ui.NewCustomWriterTTY(false, stdout, bytes.NewBufferString(""))

	opts := cmd.NewEvalOptions()
	opts.DataValuesFlags.KVsFromYAML = []string{"x=3"}

	require.NoError(t, opts.RunWithUI("x 2 * 1 +", tty))
	require.NoError(t, opts.RunWithUI("1 2 /", tty))
	require.NoError(t, opts.RunWithUI("x 5 <", tty))
	assert.Equal(t, "7\n0.5\nTrue\n", stdout.String())

	err := opts.RunWithUI("1 +", tty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rpn.ErrMalformedExpression))
}

func TestAst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.txt")
	require.NoError(t, os.WriteFile(path, []byte("a%% {{b}} %%"), 0600))

	stdout := bytes.NewBufferString("")
	tty := ui.NewCustomWriterTTY(false, stdout, bytes.NewBufferString(""))

	opts := cmd.NewAstOptions()
	opts.Files = []string{path}

	require.NoError(t, opts.RunWithUI(tty))
	assert.Equal(t, "(root) @ 1:1\n  (text \"a\") @ 1:1\n  (var b) @ 1:2\n", stdout.String())
}

func TestAstReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tpl.txt")
	require.NoError(t, os.WriteFile(path, []byte("%% for x %%"), 0600))

	opts := cmd.NewAstOptions()
	opts.Files = []string{path}

	err := opts.RunWithUI(ui.NewCustomWriterTTY(false, bytes.NewBufferString(""), bytes.NewBufferString("")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, texttemplate.ErrUnexpectedToken))
}

func postWebsite(t *testing.T, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	cmd.NewWebsiteOptions().Server().Mux().ServeHTTP(w, req)
	return w
}

func TestWebsiteRender(t *testing.T) {
	w := postWebsite(t, "/render", `{"template":"%% for x in xs %%%% {{x}} %%,%% endfor %%%% {{y}} %%","values":{"xs":[1,2.5,"a"]}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"output":"1,2.5,a,None"}`, w.Body.String())

	w = postWebsite(t, "/render", `{"template":"plain","values":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"output":"plain"}`, w.Body.String())
}

func TestWebsiteRenderErrors(t *testing.T) {
	w := postWebsite(t, "/render", `{"template":"%% endfor %%"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, `{"errors":"unexpected token: unexpected 'endfor' without matching 'for' at line 1 col 1 in 'template'"}`, w.Body.String())

	w = postWebsite(t, "/render", `{"template":"x","values":[1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, `{"errors":"Expected values to be a map, but was []interface {}"}`, w.Body.String())
}

func TestWebsiteBulkTemplate(t *testing.T) {
	w := postWebsite(t, "/template", `{"files":[{"name":"a.txt","data":"hi %% {{n}} %%"}],"values":{"n":5}}`)
	assert.Equal(t, `{"files":[{"name":"a.txt","data":"hi 5"}]}`, w.Body.String())

	w = postWebsite(t, "/template", `{"files":[{"name":"a.txt","data":"%% if 1 %%"}]}`)
	assert.Contains(t, w.Body.String(), `"errors":"delimiter not found`)

	w = postWebsite(t, "/template", `{`)
	assert.Contains(t, w.Body.String(), `"errors":"error: Unmarshaling bulk input`)
}
