// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"time"

	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/orderedmap"
	"carvel.dev/stpl/pkg/texttemplate"
	"carvel.dev/stpl/pkg/version"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Debug              bool
	MissingPlaceholder string
	RequireVersion     string
	Watch              bool

	BulkFilesSourceOpts    BulkFilesSourceOpts
	RegularFilesSourceOpts RegularFilesSourceOpts
	DataValuesFlags        DataValuesFlags
}

type Input struct {
	Files []*files.File
	// Values are layered on top of data values given via flags
	Values *orderedmap.Map
}

type Output struct {
	Files []files.OutputFile
	Err   error
	Empty bool
}

type FileSource interface {
	HasInput() bool
	HasOutput() bool
	Input() (Input, error)
	Output(Output) error
}

var _ []FileSource = []FileSource{&BulkFilesSource{}, &RegularFilesSource{}}

func NewOptions() *Options {
	return &Options{
		MissingPlaceholder: texttemplate.DefaultMissingValue,
		RegularFilesSourceOpts: RegularFilesSourceOpts{
			Recursive: true,
		},
	}
}

// BindFlags registers flags for Options.
func (o *Options) BindFlags(cmdFlags CmdFlags) {
	cmdFlags.BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmdFlags.StringVar(&o.MissingPlaceholder, "missing-placeholder", o.MissingPlaceholder, "Text rendered in place of undefined variables")
	cmdFlags.StringVar(&o.RequireVersion, "require-version", "", "Fail unless stpl version satisfies given constraint (e.g. '>= 0.2.0')")
	cmdFlags.BoolVar(&o.Watch, "watch", false, "Render again whenever template or data values files change")
	o.BulkFilesSourceOpts.Set(cmdFlags)
	o.RegularFilesSourceOpts.Set(cmdFlags)
	o.DataValuesFlags.Set(cmdFlags)
}

func (o *Options) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *Options) RunWithUI(ui ui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Now().Sub(t1))
	}()

	if len(o.RequireVersion) > 0 {
		err := version.Require(o.RequireVersion)
		if err != nil {
			return err
		}
	}

	srcs := []FileSource{
		NewBulkFilesSource(o.BulkFilesSourceOpts, ui),
		NewRegularFilesSource(o.RegularFilesSourceOpts, ui),
	}

	if o.Watch {
		return o.watch(srcs, ui)
	}

	return o.runOnce(srcs, ui)
}

func (o *Options) runOnce(srcs []FileSource, ui ui.UI) error {
	in, err := o.pickSource(srcs, func(s FileSource) bool { return s.HasInput() }).Input()
	if err != nil {
		return err
	}

	out := o.RunWithFiles(in, ui)
	if out.Empty {
		return nil
	}

	return o.pickSource(srcs, func(s FileSource) bool { return s.HasOutput() }).Output(out)
}

// RunWithFiles renders every input file against the same data values.
// Each file starts from a fresh copy of the values since loops bind
// their variables into the context they render with.
func (o *Options) RunWithFiles(in Input, ui ui.UI) Output {
	values, err := o.DataValuesFlags.Values()
	if err != nil {
		return Output{Err: err}
	}

	if in.Values != nil {
		values.Merge(in.Values)
	}

	if o.DataValuesFlags.Inspect {
		return o.inspectValues(values, ui)
	}

	var outputFiles []files.OutputFile

	for _, file := range in.Files {
		t1 := time.Now()

		result, err := o.renderFile(file, values)
		if err != nil {
			return Output{Err: err}
		}

		ui.Debugf("rendered: %s (%s)\n", file.RelativePath(), time.Now().Sub(t1))

		outputFiles = append(outputFiles, files.NewOutputFile(file.RelativePath(), []byte(result)))
	}

	return Output{Files: outputFiles}
}

func (o *Options) renderFile(file *files.File, values *orderedmap.Map) (string, error) {
	data, err := file.Bytes()
	if err != nil {
		return "", fmt.Errorf("Reading %s: %s", file.Description(), err)
	}

	tpl := texttemplate.NewTemplate(file.RelativePath(), texttemplate.RenderOpts{
		MissingValue: o.MissingPlaceholder,
	})

	rootNode, err := tpl.Parse(data)
	if err != nil {
		return "", err
	}

	ctx := orderedmap.Conversion{Object: values}.AsUnorderedStringMaps().(map[string]interface{})

	return tpl.Render(rootNode, texttemplate.NewScope(ctx))
}

func (o *Options) pickSource(srcs []FileSource, pickFunc func(FileSource) bool) FileSource {
	for _, src := range srcs {
		if pickFunc(src) {
			return src
		}
	}
	return srcs[len(srcs)-1]
}

func (o *Options) inspectValues(values *orderedmap.Map, ui ui.UI) Output {
	valuesBytes, err := yaml.Marshal(values)
	if err != nil {
		return Output{Err: fmt.Errorf("Marshaling data values: %s", err)}
	}

	ui.Printf("%s", valuesBytes)

	return Output{Empty: true}
}
