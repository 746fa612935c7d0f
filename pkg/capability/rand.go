package capability

import (
	mrand "math/rand/v2"

	"github.com/dop251/goja"
)

// RandPackage provides random-number helpers under the rand namespace.
func RandPackage() Package {
	return Package{
		Namespace:   "rand",
		Description: "Random number generation helpers",
		Repository:  "https://github.com/cmccomb/pastrami/tree/main/pkg/capability",
		table: []Function{
			{Name: "rand", Impl: randInt},
			{Name: "rand_float", Impl: randFloat},
			{Name: "rand_bool", Impl: randBool},
		},
	}
}

// randInt returns a random integer. With no arguments the full int64 range is
// used; with two arguments the result is uniform over [min, max] inclusive.
func randInt(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	switch len(call.Arguments) {
	case 0:
		return rt.ToValue(mrand.Int64())
	case 2:
		min := intArg(rt, call, "rand::rand", 0)
		max := intArg(rt, call, "rand::rand", 1)
		if min > max {
			panic(rt.NewTypeError("rand::rand: min %d is greater than max %d", min, max))
		}
		return rt.ToValue(min + mrand.Int64N(max-min+1))
	default:
		panic(rt.NewTypeError("rand::rand expects 0 or 2 arguments, got %d", len(call.Arguments)))
	}
}

func randFloat(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "rand::rand_float", 0)
	return rt.ToValue(mrand.Float64())
}

func randBool(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "rand::rand_bool", 0)
	return rt.ToValue(mrand.Int64N(2) == 1)
}
