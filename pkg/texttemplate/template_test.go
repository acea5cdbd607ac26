// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/stpl/pkg/texttemplate"
	"github.com/k14s/difflib"
	"gopkg.in/yaml.v3"
)

var (
	selectedFileTestPath = kvArg("TestTextTemplate.filetest")
	showAST              = kvArg("TestTextTemplate.ast")
	showErrs             = kvArg("TestTextTemplate.errs")
)

// Each file test holds an optional YAML values document followed by
// "===", then the template, "+++" and the expected output (or "ERR: msg").
func TestTextTemplate(t *testing.T) {
	files, err := os.ReadDir("filetests")
	if err != nil {
		t.Fatal(err)
	}

	if len(selectedFileTestPath) > 0 {
		fmt.Printf("only running %s test(s)\n", selectedFileTestPath)
	}

	var errs []error

	for _, file := range files {
		filePath := filepath.Join("filetests", file.Name())

		if len(selectedFileTestPath) > 0 && !strings.HasPrefix(file.Name(), selectedFileTestPath) {
			continue
		}

		testDesc := fmt.Sprintf("checking %s ...\n", file.Name())
		fmt.Printf("%s", testDesc)

		contents, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatal(err)
		}

		const (
			valuesSep = "\n===\n"
			testSep   = "\n+++\n"
			errPrefix = "ERR: "
		)

		var values map[string]interface{}

		data := string(contents)
		if pieces := strings.SplitN(data, valuesSep, 2); len(pieces) == 2 {
			err := yaml.Unmarshal([]byte(pieces[0]), &values)
			if err != nil {
				t.Fatalf("unmarshaling values of %s: %s", filePath, err)
			}
			data = pieces[1]
		}

		pieces := strings.SplitN(data, testSep, 2)
		if len(pieces) != 2 {
			t.Fatalf("expected file %s to include +++ separator", filePath)
		}

		resultStr, testErr := renderTemplate(pieces[0], values)
		expectedStr := strings.TrimSuffix(pieces[1], "\n")

		if strings.HasPrefix(expectedStr, errPrefix) {
			if testErr == nil {
				err = fmt.Errorf("expected render error, but did not receive it (output: %q)", resultStr)
			} else {
				err = expectEquals(testErr.Error(), strings.TrimPrefix(expectedStr, errPrefix))
			}
		} else {
			if testErr == nil {
				err = expectEquals(resultStr, expectedStr)
			} else {
				err = testErr
			}
		}

		if err != nil {
			fmt.Printf("   FAIL\n")
			if showErrs == "t" {
				sep := strings.Repeat(".", 80)
				fmt.Printf("%s\n%s%s\n", sep, err, sep)
			}
			errs = append(errs, fmt.Errorf("%s: %s", testDesc, err))
		} else {
			fmt.Printf("   .\n")
		}
	}

	if len(errs) > 0 {
		t.Errorf("%s", errs[0].Error())
	}

	if len(selectedFileTestPath) > 0 {
		t.Errorf("skipped tests")
	}
}

func renderTemplate(data string, values map[string]interface{}) (string, error) {
	tpl := texttemplate.NewTemplate("tpl", texttemplate.RenderOpts{})

	rootNode, err := tpl.Parse([]byte(data))
	if err != nil {
		return "", err
	}

	if showAST == "t" {
		fmt.Printf("### ast:\n%s\n", rootNode.AsDebugString())
	}

	return tpl.Render(rootNode, texttemplate.NewScope(values))
}

func expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<\n### diff expected...result:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}

func kvArg(name string) string {
	name += "="
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, name) {
			return strings.TrimPrefix(arg, name)
		}
	}
	return ""
}
