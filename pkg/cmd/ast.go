// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/texttemplate"
	"github.com/spf13/cobra"
)

type AstOptions struct {
	Files []string
	Debug bool
}

func NewAstOptions() *AstOptions {
	return &AstOptions{}
}

func NewAstCmd(o *AstOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast",
		Short: "Print parsed template tree",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *AstOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *AstOptions) RunWithUI(ui ui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	filesToProcess, err := files.NewFiles(o.Files, files.NewFilesOpts{Recursive: true})
	if err != nil {
		return err
	}

	for _, file := range filesToProcess {
		data, err := file.Bytes()
		if err != nil {
			return fmt.Errorf("Reading %s: %s", file.Description(), err)
		}

		rootNode, err := texttemplate.NewParser().Parse(data, file.RelativePath())
		if err != nil {
			return err
		}

		if len(filesToProcess) > 1 {
			ui.Printf("# %s\n", file.RelativePath())
		}
		ui.Printf("%s", rootNode.AsDebugString())
	}

	return nil
}
