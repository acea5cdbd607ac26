// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"carvel.dev/stpl/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	out io.Writer
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{out: os.Stdout}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *VersionOptions) Run() error {
	fmt.Fprintf(o.out, "stpl version %s\n", version.Version)

	return nil
}
