// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package e2e runs the stpl binary (built into the repository root,
// e.g. via "go build -o stpl ./cmd/stpl") against the examples.
package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stplBinary = "../../stpl"

func TestGreetingExample(t *testing.T) {
	actualOutput := runStpl(t, []string{"-f", "../../examples/greeting/template.txt",
		"--data-values-file", "../../examples/greeting/values.yml"}, "", nil)

	expectedOutput, err := os.ReadFile("../../examples/greeting/expected.txt")
	require.NoError(t, err)
	require.Equal(t, string(expectedOutput), actualOutput)
}

func TestInventoryExampleFromDirectory(t *testing.T) {
	actualOutput := runStpl(t, []string{"-f", "../../examples/inventory/templates/",
		"--data-values-file", "../../examples/inventory/values.toml"}, "", nil)

	expectedOutput, err := os.ReadFile("../../examples/inventory/expected.txt")
	require.NoError(t, err)
	require.Equal(t, string(expectedOutput), actualOutput)
}

func TestCheckStdInReading(t *testing.T) {
	actualOutput := runStpl(t, []string{"render", "-f", "-", "-v", "name=stdin", "--data-value-yaml", "unread=1"},
		"../../examples/greeting/template.txt", []string{})

	assert.True(t, strings.HasPrefix(actualOutput, "Hello stdin!\n"), actualOutput)
}

func TestCheckDataValuesFromEnv(t *testing.T) {
	actualOutput := runStpl(t, []string{"-f", "../../examples/greeting/template.txt",
		"--data-values-env", "STPL", "--data-value-yaml", "unread=0"}, "", []string{"STPL_name=env"})

	require.Equal(t, "Hello env!\nInbox zero.\n\n", actualOutput)
}

func TestCheckOutputDirectory(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")

	runStpl(t, []string{"-f", "../../examples/inventory/templates/",
		"--data-values-file", "../../examples/inventory/values.toml", "-o", outputDir}, "", nil)

	actualOutput, err := os.ReadFile(filepath.Join(outputDir, "low.txt"))
	require.NoError(t, err)
	require.Equal(t, "restock (3 left)\n\n", string(actualOutput))
}

func TestCheckErrorsAreReported(t *testing.T) {
	requireBinary(t)

	command := exec.Command(stplBinary, "-f", "-")
	command.Stdin = strings.NewReader("%% for x in %%")
	stdErr := bytes.NewBufferString("")
	command.Stderr = stdErr

	err := command.Run()
	require.Error(t, err)
	assert.Contains(t, stdErr.String(), "stpl: Error:")
	assert.Contains(t, stdErr.String(), "for <var> in <list>")
}

func TestVersion(t *testing.T) {
	actualOutput := runStpl(t, []string{"version"}, "", nil)
	assert.True(t, strings.HasPrefix(actualOutput, "stpl version "), actualOutput)
}

func requireBinary(t *testing.T) {
	if _, err := os.Stat(stplBinary); err != nil {
		t.Skipf("Skipping: stpl binary not found at %s", stplBinary)
	}
}

func runStpl(t *testing.T, args []string, stdinFileName string, envs []string) string {
	requireBinary(t)

	command := exec.Command(stplBinary, args...)
	stdError := bytes.NewBufferString("")
	command.Stderr = stdError
	command.Env = append(command.Env, envs...)

	if stdinFileName != "" {
		fileToUseInStdIn, err := os.Open(stdinFileName)
		require.NoError(t, err)
		defer fileToUseInStdIn.Close()
		command.Stdin = fileToUseInStdIn
	}

	output, err := command.Output()
	require.NoError(t, err, stdError.String())

	return string(output)
}
