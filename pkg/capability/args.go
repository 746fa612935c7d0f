package capability

import (
	"github.com/dop251/goja"
)

// argCount throws a TypeError unless the call carries exactly want arguments.
func argCount(rt *goja.Runtime, call goja.FunctionCall, name string, want int) {
	if len(call.Arguments) != want {
		panic(rt.NewTypeError("%s expects %d argument(s), got %d", name, want, len(call.Arguments)))
	}
}

// floatArg coerces argument i to a number.
func floatArg(rt *goja.Runtime, call goja.FunctionCall, name string, i int) float64 {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		panic(rt.NewTypeError("%s: argument %d must be a number", name, i+1))
	}
	return v.ToFloat()
}

// intArg coerces argument i to an integer.
func intArg(rt *goja.Runtime, call goja.FunctionCall, name string, i int) int64 {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		panic(rt.NewTypeError("%s: argument %d must be an integer", name, i+1))
	}
	return v.ToInteger()
}

// strArg coerces argument i to a string.
func strArg(rt *goja.Runtime, call goja.FunctionCall, name string, i int) string {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		panic(rt.NewTypeError("%s: argument %d must be a string", name, i+1))
	}
	return v.String()
}

// floatsArg exports argument i as a non-empty numeric array.
func floatsArg(rt *goja.Runtime, call goja.FunctionCall, name string, i int) []float64 {
	raw, ok := call.Argument(i).Export().([]interface{})
	if !ok {
		panic(rt.NewTypeError("%s: argument %d must be an array of numbers", name, i+1))
	}
	if len(raw) == 0 {
		panic(rt.NewTypeError("%s: argument %d must not be empty", name, i+1))
	}
	out := make([]float64, len(raw))
	for j, e := range raw {
		switch n := e.(type) {
		case int64:
			out[j] = float64(n)
		case float64:
			out[j] = n
		default:
			panic(rt.NewTypeError("%s: argument %d must contain only numbers", name, i+1))
		}
	}
	return out
}

// throwErr surfaces a Go error as a script runtime error.
func throwErr(rt *goja.Runtime, err error) {
	panic(rt.NewGoError(err))
}
