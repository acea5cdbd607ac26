// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"carvel.dev/stpl/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFromUnorderedMaps(t *testing.T) {
	inputA := map[string]interface{}{
		"key": []interface{}{map[string]interface{}{"nestedKey": "nestedValue"}},
	}
	inputB := map[string]interface{}{
		"key": []interface{}{map[string]interface{}{"nestedKey": "nestedValue"}},
	}

	orderedmap.Conversion{Object: inputA}.FromUnorderedMaps()

	if !reflect.DeepEqual(inputA, inputB) {
		t.Errorf("Nested object was modified. Got: %v, Expected: %v", inputA, inputB)
	}
}

func TestFromUnorderedMapsSortsKeys(t *testing.T) {
	result := orderedmap.Conversion{Object: map[interface{}]interface{}{
		"b": 1, "a": map[string]interface{}{"z": 1, "y": 2}, 3: "int key",
	}}.FromUnorderedMaps()

	m, ok := result.(*orderedmap.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"3", "a", "b"}, m.Keys())

	nested, _ := m.Get("a")
	assert.Equal(t, []string{"y", "z"}, nested.(*orderedmap.Map).Keys())
}

func TestAsUnorderedStringMapsRoundTrip(t *testing.T) {
	input := map[string]interface{}{
		"name": "stpl",
		"langs": []interface{}{"go", map[string]interface{}{"k": true}},
		"nested": map[string]interface{}{"n": 1},
	}

	ordered := orderedmap.Conversion{Object: input}.FromUnorderedMaps()
	result := orderedmap.Conversion{Object: ordered}.AsUnorderedStringMaps()

	assert.Equal(t, input, result)
}

func TestMerge(t *testing.T) {
	base := orderedmap.NewMap()
	base.Set("a", 1)
	base.SetPath([]string{"db", "host"}, "localhost")
	base.SetPath([]string{"db", "port"}, 5432)
	base.Set("list", []interface{}{1, 2})

	overlay := orderedmap.NewMap()
	overlay.SetPath([]string{"db", "port"}, 6543)
	overlay.Set("list", []interface{}{3})
	overlay.Set("b", "new")

	base.Merge(overlay)

	assert.Equal(t, map[string]interface{}{
		"a":    1,
		"db":   map[string]interface{}{"host": "localhost", "port": 6543},
		"list": []interface{}{3},
		"b":    "new",
	}, orderedmap.Conversion{Object: base}.AsUnorderedStringMaps())
	assert.Equal(t, []string{"a", "db", "list", "b"}, base.Keys())
}

func TestMergeCopiesNestedMaps(t *testing.T) {
	base := orderedmap.NewMap()

	overlay := orderedmap.NewMap()
	overlay.SetPath([]string{"db", "host"}, "a")

	base.Merge(overlay)
	overlay.SetPath([]string{"db", "host"}, "b")

	val, _ := base.Get("db")
	host, _ := val.(*orderedmap.Map).Get("host")
	assert.Equal(t, "a", host)
}

func TestSetPathReplacesScalars(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("db", "scalar")
	m.SetPath([]string{"db", "host"}, "h")

	assert.Equal(t, map[string]interface{}{"db": map[string]interface{}{"host": "h"}},
		orderedmap.Conversion{Object: m}.AsUnorderedStringMaps())
}

func TestDelete(t *testing.T) {
	m := orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: "a", Value: 1}, {Key: "b", Value: 2}})

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 1, m.Len())

	_, found := m.Get("a")
	assert.False(t, found)
}

func TestMarshalKeepsOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("z", 1)
	m.SetPath([]string{"a", "y"}, []interface{}{"x"})

	jsonBs, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":["x"]}}`, string(jsonBs))

	yamlBs, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "z: 1\na:\n    y:\n        - x\n", string(yamlBs))
}
