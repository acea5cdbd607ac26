// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"carvel.dev/stpl/pkg/cmd/render"
	"carvel.dev/stpl/pkg/cmd/ui"
	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/orderedmap"
)

type jsFunc func(js.Value, []js.Value) interface{}

func registerFunc(name string, fn jsFunc) {
	js.Global().Set(name, js.FuncOf(fn))
	fmt.Printf("Registered \"%s\" with Global.\n", name)
}

// template renders args[0] (template text) against args[1] (data values
// as JSON, optional) and returns {output} or {errors}.
func template(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return map[string]interface{}{"errors": "Expected template argument"}
	}

	in := render.Input{
		Files: []*files.File{
			files.MustNewFileFromSource(files.NewBytesSource("template", []byte(args[0].String()))),
		},
	}

	if len(args) > 1 && args[1].Type() == js.TypeString {
		vals, err := render.DecodeValues(files.TypeJSON, []byte(args[1].String()))
		if err != nil {
			return map[string]interface{}{"errors": err.Error()}
		}
		if typedVals, ok := vals.(*orderedmap.Map); ok {
			in.Values = typedVals
		}
	}

	out := render.NewOptions().RunWithFiles(in, ui.NewTTY(false))
	if out.Err != nil {
		return map[string]interface{}{"errors": out.Err.Error()}
	}

	return map[string]interface{}{"output": string(out.Files[0].Bytes())}
}

func main() {
	registerFunc("stpl", template)

	// Go-based WASM modules must remain running to be available to the runtime.
	<-make(chan int)
}
