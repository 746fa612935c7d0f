package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/cmccomb/pastrami/pkg/capability"
)

// Instance is one live interpreter plus its mounted namespaces. Instances are
// built whole by New and never patched in place; enabling or disabling a
// package means building a replacement instance.
//
// Evaluations against the same instance are serialized by an internal mutex.
// Everything else about an instance is immutable after construction.
type Instance struct {
	rt      *goja.Runtime
	enabled []string

	execMu  sync.Mutex
	capture *Capture
}

// New builds an instance from the base runtime plus the given capability
// packages. Packages are registered in sorted namespace order so the result
// is reproducible regardless of the order the caller collected them in.
func New(packages []capability.Package) (*Instance, error) {
	sorted := make([]capability.Package, len(packages))
	copy(sorted, packages)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Namespace < sorted[j].Namespace
	})

	inst := &Instance{rt: goja.New()}

	if err := inst.rt.Set("print", inst.emitFunc(Render)); err != nil {
		return nil, fmt.Errorf("failed to bind print: %w", err)
	}
	if err := inst.rt.Set("debug", inst.emitFunc(RenderDebug)); err != nil {
		return nil, fmt.Errorf("failed to bind debug: %w", err)
	}

	for _, pkg := range sorted {
		if err := pkg.Mount(inst.rt); err != nil {
			return nil, err
		}
		inst.enabled = append(inst.enabled, pkg.Namespace)
	}

	return inst, nil
}

// Enabled returns the mounted namespaces in sorted order.
func (inst *Instance) Enabled() []string {
	out := make([]string, len(inst.enabled))
	copy(out, inst.enabled)
	return out
}

// Eval compiles and runs script text against the given capture. A compile
// failure is returned as *ParseError before any statement executes; a failure
// during evaluation is returned as *RuntimeError and whatever the script
// already emitted stays in the capture. hasValue is false when the script
// produced no final value.
func (inst *Instance) Eval(script string, capture *Capture) (finalValue string, hasValue bool, err error) {
	prog, compileErr := goja.Compile("script", rewriteQualifiers(script), false)
	if compileErr != nil {
		return "", false, &ParseError{Message: compileErr.Error()}
	}

	inst.execMu.Lock()
	defer inst.execMu.Unlock()

	inst.capture = capture
	defer func() { inst.capture = nil }()

	value, runErr := inst.run(prog)
	if runErr != nil {
		return "", false, &RuntimeError{Message: runErr.Error()}
	}
	if value == nil || goja.IsUndefined(value) {
		return "", false, nil
	}
	return Render(value), true, nil
}

// run executes a compiled program, converting interpreter panics into plain
// errors so hostile script text cannot take down the host process.
func (inst *Instance) run(prog *goja.Program) (value goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("interpreter fault: %v", r)
		}
	}()
	return inst.rt.RunProgram(prog)
}

// Interrupt aborts an in-flight evaluation with the given reason. The core
// imposes no timeout on executions; this hook exists so a host that wraps
// Eval with its own cancellation policy can reclaim the goroutine.
func (inst *Instance) Interrupt(reason string) {
	inst.rt.Interrupt(reason)
}

// ClearInterrupt re-arms the instance after an Interrupt.
func (inst *Instance) ClearInterrupt() {
	inst.rt.ClearInterrupt()
}

// emitFunc builds a print-style native that renders its arguments with the
// given renderer and appends the joined line to the active capture.
func (inst *Instance) emitFunc(render func(goja.Value) string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if inst.capture == nil {
			return goja.Undefined()
		}
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, render(arg))
		}
		inst.capture.Emit(strings.Join(parts, " "))
		return goja.Undefined()
	}
}
