// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
)

type RegularFilesSourceOpts struct {
	Files     []string
	Recursive bool
	Output    string

	SymlinkAllowOpts files.SymlinkAllowOpts
}

func (s *RegularFilesSourceOpts) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVarP(&s.Files, "file", "f", nil, "File (ie local path, HTTP URL, -) (can be specified multiple times)")
	cmdFlags.BoolVarP(&s.Recursive, "recursive", "R", s.Recursive, "Interpret file as directory")
	cmdFlags.StringVarP(&s.Output, "output", "o", "", "Directory for output (contents are replaced)")

	cmdFlags.BoolVar(&s.SymlinkAllowOpts.AllowAll, "dangerous-allow-all-symlink-destinations", false,
		"Symlinks to all destinations are allowed")
	cmdFlags.StringSliceVar(&s.SymlinkAllowOpts.AllowedDstPaths, "allow-symlink-destination", nil,
		"File paths to which symlinks are allowed (can be specified multiple times)")
}

type RegularFilesSource struct {
	opts RegularFilesSourceOpts
	ui   ui.UI
}

func NewRegularFilesSource(opts RegularFilesSourceOpts, ui ui.UI) *RegularFilesSource {
	return &RegularFilesSource{opts, ui}
}

func (s *RegularFilesSource) HasInput() bool  { return len(s.opts.Files) > 0 }
func (s *RegularFilesSource) HasOutput() bool { return true }

func (s *RegularFilesSource) Input() (Input, error) {
	filesToProcess, err := files.NewFiles(s.opts.Files, files.NewFilesOpts{
		Recursive: s.opts.Recursive,
		Symlinks:  s.opts.SymlinkAllowOpts,
	})
	if err != nil {
		return Input{}, err
	}

	return Input{Files: filesToProcess}, nil
}

func (s *RegularFilesSource) Output(out Output) error {
	if out.Err != nil {
		return out.Err
	}

	if len(s.opts.Output) > 0 {
		return files.NewOutputDirectory(s.opts.Output, out.Files, s.ui).Write()
	}

	s.ui.Debugf("### result\n")

	for _, file := range out.Files {
		s.ui.Printf("%s", file.Bytes()) // no newline
	}

	return nil
}
