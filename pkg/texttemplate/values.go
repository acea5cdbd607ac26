// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"carvel.dev/stpl/pkg/rpn"
)

// ValueAsString renders a value the way it is inserted into template
// output. Absent (nil) values are rendered as missing.
func ValueAsString(val interface{}, missing string) string {
	switch typedVal := rpn.Normalize(val).(type) {
	case nil:
		return missing
	case bool:
		if typedVal {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(typedVal, 10)
	case float64:
		return floatAsString(typedVal)
	case string:
		return typedVal
	case []interface{}:
		var result []string
		for _, item := range typedVal {
			if str, ok := item.(string); ok {
				result = append(result, "'"+str+"'")
				continue
			}
			result = append(result, ValueAsString(item, DefaultMissingValue))
		}
		return "[" + strings.Join(result, ", ") + "]"
	default:
		return fmt.Sprintf("%v", typedVal)
	}
}

func floatAsString(val float64) string {
	switch {
	case math.IsNaN(val):
		return "nan"
	case math.IsInf(val, 1):
		return "inf"
	case math.IsInf(val, -1):
		return "-inf"
	}

	abs := math.Abs(val)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(val, 'e', -1, 64)
	}

	result := strconv.FormatFloat(val, 'f', -1, 64)
	if !strings.ContainsRune(result, '.') {
		result += ".0"
	}
	return result
}
