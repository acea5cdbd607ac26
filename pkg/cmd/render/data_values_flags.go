// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"strings"

	"carvel.dev/stpl/pkg/orderedmap"
)

const (
	dvsKVSep  = "="
	dvsKeySep = "."
	// '__' gets translated into a '.' since periods may not be liked by shells
	dvsEnvKeySep = "__"

	// templates look values up by top-level name only
	dvsNestedKeyNote = " (dotted keys such as all.key1.subkey=1 set nested map entries, which templates cannot reference; use them to override nested values that --data-values-inspect shows)"
)

type DataValuesFlags struct {
	FromFiles []string

	EnvFromStrings []string
	EnvFromYAML    []string

	KVsFromStrings []string
	KVsFromYAML    []string
	KVsFromFiles   []string

	Inspect bool

	EnvironFunc  func() []string
	ReadFileFunc func(string) ([]byte, error)
}

func (s *DataValuesFlags) Set(cmdFlags CmdFlags) {
	cmdFlags.StringArrayVar(&s.FromFiles, "data-values-file", nil, "Set multiple data values via YAML, JSON or TOML file (format: /file/path.yml) (can be specified multiple times)")

	cmdFlags.StringArrayVar(&s.EnvFromStrings, "data-values-env", nil, "Extract data values (as strings) from prefixed env vars (format: PREFIX for PREFIX_all__key1=str) (can be specified multiple times)")
	cmdFlags.StringArrayVar(&s.EnvFromYAML, "data-values-env-yaml", nil, "Extract data values (parsed as YAML) from prefixed env vars (format: PREFIX for PREFIX_all__key1=true) (can be specified multiple times)")

	cmdFlags.StringArrayVarP(&s.KVsFromStrings, "data-value", "v", nil, "Set specific data value to given value, as string (format: key1=123) (can be specified multiple times)"+dvsNestedKeyNote)
	cmdFlags.StringArrayVar(&s.KVsFromYAML, "data-value-yaml", nil, "Set specific data value to given value, parsed as YAML (format: key1=true) (can be specified multiple times)"+dvsNestedKeyNote)
	cmdFlags.StringArrayVar(&s.KVsFromFiles, "data-value-file", nil, "Set specific data value to given file contents, as string (format: key1=/file/path) (can be specified multiple times)"+dvsNestedKeyNote)

	cmdFlags.BoolVar(&s.Inspect, "data-values-inspect", false, "Inspect data values (instead of rendering)")
}

type dataValuesFlagsSource struct {
	Values        []string
	TransformFunc func(string) (interface{}, error)
}

// Values layers all data values given via flags. Later sources take
// precedence: files, then env vars, then key-values, then key-file pairs.
func (s *DataValuesFlags) Values() (*orderedmap.Map, error) {
	plainValFunc := func(rawVal string) (interface{}, error) { return rawVal, nil }

	yamlValFunc := func(rawVal string) (interface{}, error) {
		val, err := decodeYAML([]byte(rawVal))
		if err != nil {
			return nil, fmt.Errorf("Deserializing YAML value: %s", err)
		}
		return val, nil
	}

	result := orderedmap.NewMap()

	for _, path := range s.FromFiles {
		vals, err := s.dataValuesFile(path)
		if err != nil {
			return nil, fmt.Errorf("Extracting data values from file '%s': %s", path, err)
		}
		result.Merge(vals)
	}

	var kvs []orderedmap.MapItem

	for _, src := range []dataValuesFlagsSource{{s.EnvFromStrings, plainValFunc}, {s.EnvFromYAML, yamlValFunc}} {
		for _, envPrefix := range src.Values {
			vals, err := s.env(envPrefix, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data values from env under prefix '%s': %s", envPrefix, err)
			}
			kvs = append(kvs, vals...)
		}
	}

	// KVs and files take precedence over environment variables
	for _, src := range []dataValuesFlagsSource{{s.KVsFromStrings, plainValFunc}, {s.KVsFromYAML, yamlValFunc}} {
		for _, kv := range src.Values {
			val, err := s.kv(kv, src.TransformFunc)
			if err != nil {
				return nil, fmt.Errorf("Extracting data value from KV: %s", err)
			}
			kvs = append(kvs, val)
		}
	}

	for _, file := range s.KVsFromFiles {
		val, err := s.file(file)
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from file: %s", err)
		}
		kvs = append(kvs, val)
	}

	for _, kv := range kvs {
		err := s.setNested(result, kv)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *DataValuesFlags) env(prefix string, valueFunc func(string) (interface{}, error)) ([]orderedmap.MapItem, error) {
	var result []orderedmap.MapItem

	environFunc := os.Environ
	if s.EnvironFunc != nil {
		environFunc = s.EnvironFunc
	}

	for _, envVar := range environFunc() {
		pieces := strings.SplitN(envVar, dvsKVSep, 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected env variable to be key-value pair (format: key=value)")
		}

		if !strings.HasPrefix(pieces[0], prefix+"_") {
			continue
		}

		val, err := valueFunc(pieces[1])
		if err != nil {
			return nil, fmt.Errorf("Extracting data value from env variable '%s': %s", pieces[0], err)
		}

		key := strings.ReplaceAll(strings.TrimPrefix(pieces[0], prefix+"_"), dvsEnvKeySep, dvsKeySep)
		result = append(result, orderedmap.MapItem{Key: key, Value: val})
	}

	return result, nil
}

func (s *DataValuesFlags) kv(kv string, valueFunc func(string) (interface{}, error)) (orderedmap.MapItem, error) {
	pieces := strings.SplitN(kv, dvsKVSep, 2)
	if len(pieces) != 2 || len(pieces[0]) == 0 {
		return orderedmap.MapItem{}, fmt.Errorf("Expected format key=value")
	}

	val, err := valueFunc(pieces[1])
	if err != nil {
		return orderedmap.MapItem{}, fmt.Errorf("Deserializing value for key '%s': %s", pieces[0], err)
	}

	return orderedmap.MapItem{Key: pieces[0], Value: val}, nil
}

func (s *DataValuesFlags) file(kv string) (orderedmap.MapItem, error) {
	pieces := strings.SplitN(kv, dvsKVSep, 2)
	if len(pieces) != 2 || len(pieces[0]) == 0 {
		return orderedmap.MapItem{}, fmt.Errorf("Expected format key=/file/path")
	}

	contents, err := s.readFile(pieces[1])
	if err != nil {
		return orderedmap.MapItem{}, fmt.Errorf("Reading file '%s': %s", pieces[1], err)
	}

	return orderedmap.MapItem{Key: pieces[0], Value: string(contents)}, nil
}

func (s *DataValuesFlags) readFile(path string) ([]byte, error) {
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(path)
	}
	return os.ReadFile(path)
}

func (s *DataValuesFlags) setNested(result *orderedmap.Map, kv orderedmap.MapItem) error {
	keyPieces := strings.Split(kv.Key, dvsKeySep)
	currMap := result

	for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
		subMap, found := currMap.Get(keyPiece)
		if !found {
			newCurrMap := orderedmap.NewMap()
			currMap.Set(keyPiece, newCurrMap)
			currMap = newCurrMap
			continue
		}

		typedSubMap, ok := subMap.(*orderedmap.Map)
		if !ok {
			return fmt.Errorf("Expected key '%s' to not conflict with other data values at piece '%s'", kv.Key, keyPiece)
		}
		currMap = typedSubMap
	}

	currMap.Set(keyPieces[len(keyPieces)-1], kv.Value)
	return nil
}
