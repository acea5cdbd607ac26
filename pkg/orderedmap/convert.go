// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"sort"
)

type Conversion struct {
	Object interface{}
}

// AsUnorderedStringMaps returns a copy of Object with every *Map
// replaced by a plain map[string]interface{}.
func (c Conversion) AsUnorderedStringMaps() interface{} {
	return c.asUnorderedStringMaps(c.Object)
}

func (c Conversion) asUnorderedStringMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case *Map:
		result := map[string]interface{}{}
		typedObj.Iterate(func(k string, v interface{}) {
			result[k] = c.asUnorderedStringMaps(v)
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.asUnorderedStringMaps(item)
		}
		return result

	default:
		return typedObj
	}
}

// FromUnorderedMaps returns a copy of Object with every Go map replaced
// by a *Map whose keys are sorted, so that the result is deterministic.
// Non-string keys (e.g. YAML integers) are converted with fmt.
func (c Conversion) FromUnorderedMaps() interface{} {
	return c.fromUnorderedMaps(c.Object)
}

func (c Conversion) fromUnorderedMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[interface{}]interface{}:
		strMap := map[string]interface{}{}
		for k, v := range typedObj {
			strMap[fmt.Sprintf("%v", k)] = v
		}
		return c.fromUnorderedMaps(strMap)

	case map[string]interface{}:
		result := NewMap()
		for _, key := range c.sortedMapKeys(typedObj) {
			result.Set(key, c.fromUnorderedMaps(typedObj[key]))
		}
		return result

	case *Map:
		return typedObj.DeepCopy()

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnorderedMaps(item)
		}
		return result

	default:
		return typedObj
	}
}

func (Conversion) sortedMapKeys(m map[string]interface{}) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
