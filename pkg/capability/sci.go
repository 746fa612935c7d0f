package capability

import (
	"math"
	"sort"

	"github.com/dop251/goja"
)

// SciPackage provides scientific and statistical helpers under the sci
// namespace.
func SciPackage() Package {
	return Package{
		Namespace:   "sci",
		Description: "Scientific and numerical utilities",
		Repository:  "https://github.com/cmccomb/pastrami/tree/main/pkg/capability",
		table: []Function{
			{Name: "argmin", Impl: sciArgmin},
			{Name: "argmax", Impl: sciArgmax},
			{Name: "min", Impl: sciMin},
			{Name: "max", Impl: sciMax},
			{Name: "sum", Impl: sciSum},
			{Name: "mean", Impl: sciMean},
			{Name: "median", Impl: sciMedian},
			{Name: "variance", Impl: sciVariance},
			{Name: "std", Impl: sciStd},
			{Name: "linspace", Impl: sciLinspace},
		},
	}
}

func argmin(values []float64) int {
	best := 0
	for i, v := range values {
		if v < values[best] {
			best = i
		}
	}
	return best
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// variance is the population variance.
func variance(values []float64) float64 {
	m := mean(values)
	total := 0.0
	for _, v := range values {
		d := v - m
		total += d * d
	}
	return total / float64(len(values))
}

func linspace(start, stop float64, count int) []float64 {
	if count == 1 {
		return []float64{start}
	}
	step := (stop - start) / float64(count-1)
	out := make([]float64, count)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[count-1] = stop
	return out
}

func sciArgmin(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::argmin", 1)
	return rt.ToValue(int64(argmin(floatsArg(rt, call, "sci::argmin", 0))))
}

func sciArgmax(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::argmax", 1)
	return rt.ToValue(int64(argmax(floatsArg(rt, call, "sci::argmax", 0))))
}

func sciMin(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::min", 1)
	values := floatsArg(rt, call, "sci::min", 0)
	return rt.ToValue(values[argmin(values)])
}

func sciMax(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::max", 1)
	values := floatsArg(rt, call, "sci::max", 0)
	return rt.ToValue(values[argmax(values)])
}

func sciSum(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::sum", 1)
	return rt.ToValue(sum(floatsArg(rt, call, "sci::sum", 0)))
}

func sciMean(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::mean", 1)
	return rt.ToValue(mean(floatsArg(rt, call, "sci::mean", 0)))
}

func sciMedian(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::median", 1)
	return rt.ToValue(median(floatsArg(rt, call, "sci::median", 0)))
}

func sciVariance(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::variance", 1)
	return rt.ToValue(variance(floatsArg(rt, call, "sci::variance", 0)))
}

func sciStd(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::std", 1)
	return rt.ToValue(math.Sqrt(variance(floatsArg(rt, call, "sci::std", 0))))
}

func sciLinspace(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "sci::linspace", 3)
	start := floatArg(rt, call, "sci::linspace", 0)
	stop := floatArg(rt, call, "sci::linspace", 1)
	count := intArg(rt, call, "sci::linspace", 2)
	if count < 1 {
		panic(rt.NewTypeError("sci::linspace: count must be at least 1, got %d", count))
	}
	return rt.ToValue(linspace(start, stop, int(count)))
}
