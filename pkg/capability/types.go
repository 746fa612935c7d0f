package capability

import (
	"fmt"

	"github.com/dop251/goja"
)

// ScopeSeparator is the qualifier scripts use between a namespace and a
// function name (for example rand::rand).
const ScopeSeparator = "::"

// NativeFunc is the typed implementation backing one namespaced script
// function. Implementations report bad arguments by panicking with a value
// created through the runtime (NewTypeError, NewGoError); the engine converts
// those into script-level runtime errors.
type NativeFunc func(rt *goja.Runtime, call goja.FunctionCall) goja.Value

// Function pairs a script-visible name with its native implementation.
type Function struct {
	Name string
	Impl NativeFunc
}

// Package is an immutable bundle of native functions exposed to scripts under
// a dedicated namespace. Packages are defined once at process start and only
// ever referenced afterwards.
type Package struct {
	Namespace   string
	Description string
	Repository  string

	table []Function
}

// Descriptor is the UI-facing row for one package, including whether it is
// currently enabled.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Repository  string `json:"repository"`
	Selected    bool   `json:"selected"`
}

// Functions returns the script-visible function names in declaration order.
func (p Package) Functions() []string {
	names := make([]string, 0, len(p.table))
	for _, fn := range p.table {
		names = append(names, fn.Name)
	}
	return names
}

// Mount registers the package's functions on the runtime under a fresh
// namespace object.
func (p Package) Mount(rt *goja.Runtime) error {
	ns := rt.NewObject()
	for _, fn := range p.table {
		impl := fn.Impl
		wrapped := func(call goja.FunctionCall) goja.Value {
			return impl(rt, call)
		}
		if err := ns.Set(fn.Name, wrapped); err != nil {
			return fmt.Errorf("failed to bind %s%s%s: %w", p.Namespace, ScopeSeparator, fn.Name, err)
		}
	}
	if err := rt.Set(p.Namespace, ns); err != nil {
		return fmt.Errorf("failed to mount namespace %s: %w", p.Namespace, err)
	}
	return nil
}
