// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/orderedmap"
)

type BulkFilesSourceOpts struct {
	BulkIn  string
	BulkOut bool
}

func (s *BulkFilesSourceOpts) Set(cmdFlags CmdFlags) {
	cmdFlags.StringVar(&s.BulkIn, "bulk-in", "", "Accept files and data values in bulk format")
	cmdFlags.BoolVar(&s.BulkOut, "bulk-out", false, "Output files in bulk format")
}

type BulkFilesSource struct {
	opts BulkFilesSourceOpts
	ui   ui.UI
}

type BulkFiles struct {
	Files  []BulkFile             `json:"files,omitempty"`
	Values map[string]interface{} `json:"values,omitempty"`
	Errors string                 `json:"errors,omitempty"`
}

type BulkFile struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

func NewBulkFilesSource(opts BulkFilesSourceOpts, ui ui.UI) *BulkFilesSource {
	return &BulkFilesSource{opts, ui}
}

func (s *BulkFilesSource) HasInput() bool  { return len(s.opts.BulkIn) > 0 }
func (s *BulkFilesSource) HasOutput() bool { return s.opts.BulkOut }

func (s BulkFilesSource) Input() (Input, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(s.opts.BulkIn)))
	decoder.UseNumber()

	var fs BulkFiles
	err := decoder.Decode(&fs)
	if err != nil {
		return Input{}, fmt.Errorf("Unmarshaling bulk input: %s", err)
	}

	var result []*files.File

	for _, f := range fs.Files {
		file, err := files.NewFileFromSource(files.NewBytesSource(f.Name, []byte(f.Data)))
		if err != nil {
			return Input{}, err
		}

		result = append(result, file)
	}

	in := Input{Files: result}

	if len(fs.Values) > 0 {
		in.Values = orderedmap.Conversion{Object: fromJSONNumbers(fs.Values)}.FromUnorderedMaps().(*orderedmap.Map)
	}

	return in, nil
}

func (s *BulkFilesSource) Output(out Output) error {
	fs := BulkFiles{}

	if out.Err != nil {
		fs.Errors = out.Err.Error()
	}

	for _, outputFile := range out.Files {
		fs.Files = append(fs.Files, BulkFile{
			Name: outputFile.RelativePath(),
			Data: string(outputFile.Bytes()),
		})
	}

	resultBytes, err := json.Marshal(fs)
	if err != nil {
		return err
	}

	s.ui.Debugf("### result\n")
	s.ui.Printf("%s", resultBytes)

	return nil
}
