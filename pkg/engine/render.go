package engine

import (
	"encoding/json"

	"github.com/dop251/goja"
)

// Render formats a script value as a plain-text line. Structured values
// (arrays, records) render as JSON literals so the lines stay parseable by
// the consuming UI; primitives use the interpreter's own string conversion.
func Render(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}

	switch exported := v.Export().(type) {
	case string:
		return exported
	case []interface{}, map[string]interface{}:
		data, err := json.Marshal(exported)
		if err != nil {
			return v.String()
		}
		return string(data)
	default:
		return v.String()
	}
}

// RenderDebug formats a value the way debug statements show it: strings are
// quoted, everything else renders like Render.
func RenderDebug(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if s, ok := v.Export().(string); ok {
		data, err := json.Marshal(s)
		if err != nil {
			return s
		}
		return string(data)
	}
	return Render(v)
}
