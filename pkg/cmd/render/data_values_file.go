// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"carvel.dev/stpl/pkg/files"
	"carvel.dev/stpl/pkg/orderedmap"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func (s *DataValuesFlags) dataValuesFile(path string) (*orderedmap.Map, error) {
	var (
		file *files.File
		err  error
	)

	if s.ReadFileFunc != nil && path != "-" {
		data, err := s.ReadFileFunc(path)
		if err != nil {
			return nil, err
		}
		file, err = files.NewFileFromSource(files.NewBytesSource(path, data))
		if err != nil {
			return nil, err
		}
	} else {
		fs, err := files.NewFiles([]string{path}, files.NewFilesOpts{})
		if err != nil {
			return nil, err
		}
		file = fs[0]
	}

	data, err := file.Bytes()
	if err != nil {
		return nil, err
	}

	val, err := DecodeValues(file.Type(), data)
	if err != nil {
		return nil, err
	}

	if val == nil {
		return orderedmap.NewMap(), nil
	}

	typedVal, ok := val.(*orderedmap.Map)
	if !ok {
		return nil, fmt.Errorf("Expected data values file to contain a map, but was %T", val)
	}
	return typedVal, nil
}

// DecodeValues parses data values according to the file type; files of
// unknown type are parsed as YAML (which also covers most JSON). Maps are
// returned as *orderedmap.Map with sorted keys.
func DecodeValues(fileType files.Type, data []byte) (interface{}, error) {
	switch fileType {
	case files.TypeJSON:
		return decodeJSON(data)

	case files.TypeTOML:
		var val map[string]interface{}
		err := toml.Unmarshal(data, &val)
		if err != nil {
			return nil, fmt.Errorf("Unmarshaling TOML: %s", err)
		}
		return orderedmap.Conversion{Object: val}.FromUnorderedMaps(), nil

	default:
		return decodeYAML(data)
	}
}

func decodeYAML(data []byte) (interface{}, error) {
	var val interface{}
	err := yaml.Unmarshal(data, &val)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling YAML: %s", err)
	}
	return orderedmap.Conversion{Object: val}.FromUnorderedMaps(), nil
}

func decodeJSON(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var val interface{}
	err := decoder.Decode(&val)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("Unmarshaling JSON: %s", err)
	}

	return orderedmap.Conversion{Object: fromJSONNumbers(val)}.FromUnorderedMaps(), nil
}

// fromJSONNumbers keeps integral JSON numbers as integers.
func fromJSONNumbers(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case json.Number:
		if i, err := typedVal.Int64(); err == nil {
			return i
		}
		f, err := typedVal.Float64()
		if err != nil {
			return typedVal.String()
		}
		return f

	case map[string]interface{}:
		for k, v := range typedVal {
			typedVal[k] = fromJSONNumbers(v)
		}
		return typedVal

	case []interface{}:
		for i, v := range typedVal {
			typedVal[i] = fromJSONNumbers(v)
		}
		return typedVal

	default:
		return typedVal
	}
}
