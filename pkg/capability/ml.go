package capability

import (
	"math"

	"github.com/dop251/goja"
)

// MLPackage provides machine-learning helpers under the ml namespace.
func MLPackage() Package {
	return Package{
		Namespace:   "ml",
		Description: "Machine learning helpers",
		Repository:  "https://github.com/cmccomb/pastrami/tree/main/pkg/capability",
		table: []Function{
			{Name: "sigmoid", Impl: mlSigmoid},
			{Name: "relu", Impl: mlRelu},
			{Name: "normalize", Impl: mlNormalize},
			{Name: "dot", Impl: mlDot},
			{Name: "mse", Impl: mlMSE},
		},
	}
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }

// normalizeVec rescales values into [0, 1]. A constant vector maps to zeros.
func normalizeVec(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]float64, len(values))
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func meanSquaredError(actual, predicted []float64) float64 {
	sum := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return sum / float64(len(actual))
}

func mlSigmoid(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "ml::sigmoid", 1)
	return rt.ToValue(sigmoid(floatArg(rt, call, "ml::sigmoid", 0)))
}

func mlRelu(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "ml::relu", 1)
	return rt.ToValue(math.Max(0, floatArg(rt, call, "ml::relu", 0)))
}

func mlNormalize(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "ml::normalize", 1)
	return rt.ToValue(normalizeVec(floatsArg(rt, call, "ml::normalize", 0)))
}

func sameLength(rt *goja.Runtime, name string, a, b []float64) {
	if len(a) != len(b) {
		panic(rt.NewTypeError("%s: arrays must have equal length (%d vs %d)", name, len(a), len(b)))
	}
}

func mlDot(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "ml::dot", 2)
	a := floatsArg(rt, call, "ml::dot", 0)
	b := floatsArg(rt, call, "ml::dot", 1)
	sameLength(rt, "ml::dot", a, b)
	return rt.ToValue(dot(a, b))
}

func mlMSE(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "ml::mse", 2)
	a := floatsArg(rt, call, "ml::mse", 0)
	b := floatsArg(rt, call, "ml::mse", 1)
	sameLength(rt, "ml::mse", a, b)
	return rt.ToValue(meanSquaredError(a, b))
}
