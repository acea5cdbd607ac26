// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package rpn

import (
	"fmt"
	"math"
	"reflect"
)

// Normalize converts Go values into the small set of types the evaluator
// works with: int64, float64, bool, string and []interface{}. Other values
// are returned unchanged.
func Normalize(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case nil, bool, string, int64, float64:
		return typedVal
	case int:
		return int64(typedVal)
	case int8:
		return int64(typedVal)
	case int16:
		return int64(typedVal)
	case int32:
		return int64(typedVal)
	case uint8:
		return int64(typedVal)
	case uint16:
		return int64(typedVal)
	case uint32:
		return int64(typedVal)
	case uint:
		return normalizeUint(uint64(typedVal))
	case uint64:
		return normalizeUint(typedVal)
	case float32:
		return float64(typedVal)
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = Normalize(item)
		}
		return result
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		result := make([]interface{}, rv.Len())
		for i := range result {
			result[i] = Normalize(rv.Index(i).Interface())
		}
		return result
	}
	return val
}

func normalizeUint(val uint64) interface{} {
	if val > math.MaxInt64 {
		return float64(val)
	}
	return int64(val)
}

// Truthy reports whether val counts as true in a condition: boolean true,
// any non-zero number, or any non-empty string or sequence.
func Truthy(val interface{}) bool {
	switch typedVal := Normalize(val).(type) {
	case nil:
		return false
	case bool:
		return typedVal
	case int64:
		return typedVal != 0
	case float64:
		return typedVal != 0
	case string:
		return len(typedVal) > 0
	case []interface{}:
		return len(typedVal) > 0
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// number is a numeric operand; bools count as 0 and 1.
type number struct {
	i     int64
	f     float64
	isInt bool
}

func asNumber(val interface{}) (number, bool) {
	switch typedVal := val.(type) {
	case int64:
		return number{i: typedVal, f: float64(typedVal), isInt: true}, true
	case float64:
		return number{f: typedVal}, true
	case bool:
		if typedVal {
			return number{i: 1, f: 1, isInt: true}, true
		}
		return number{isInt: true}, true
	}
	return number{}, false
}

func (n number) value() interface{} {
	if n.isInt {
		return n.i
	}
	return n.f
}

func typeName(val interface{}) string {
	switch val.(type) {
	case nil:
		return "none"
	case int64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case string:
		return "string"
	case []interface{}:
		return "sequence"
	}
	return fmt.Sprintf("%T", val)
}
