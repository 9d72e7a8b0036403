package formulas

import (
	"encoding/json"
	"fmt"
)

// JSONParsePrimitive decodes strings holding a JSON string, number, boolean or
// null. Any other value, including strings holding JSON objects or arrays, is
// returned unchanged.
func JSONParsePrimitive(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return v
	}

	switch parsed.(type) {
	case map[string]any, []any:
		return v
	}
	return parsed
}

// JSONBuildObject builds an object from alternating keys and values. Keys are
// stringified and values are passed through JSONParsePrimitive. A trailing key
// without a value is dropped.
func JSONBuildObject(keyValues ...any) map[string]any {
	obj := make(map[string]any, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		obj[keyString(keyValues[i])] = JSONParsePrimitive(keyValues[i+1])
	}
	return obj
}

func keyString(k any) string {
	switch key := k.(type) {
	case string:
		return key
	case nil:
		return "null"
	case float64:
		data, _ := json.Marshal(key)
		return string(data)
	}
	return fmt.Sprint(k)
}
