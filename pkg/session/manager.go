package session

import (
	"sort"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/cmccomb/pastrami/internal/observability"
	"github.com/cmccomb/pastrami/pkg/capability"
	"github.com/cmccomb/pastrami/pkg/engine"
)

// Manager serializes access to the single live engine instance.
//
// SetEnabledPackages takes the write lock for the whole
// validate-build-swap-recompute sequence, so callers never observe a
// half-configured instance. Execute and CompletionCatalog hold the read lock
// only long enough to copy the current state: an execution already in flight
// when a reconfigure lands completes against the instance it started with.
type Manager struct {
	registry *capability.Registry
	logger   zerolog.Logger

	mu       sync.RWMutex
	instance *engine.Instance
	packages []capability.Package
	catalog  []string
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager with every curated package enabled, the
// application default.
func NewManager(registry *capability.Registry, opts ...Option) (*Manager, error) {
	observability.EnsureRegistered()

	m := &Manager{
		registry: registry,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.SetEnabledPackages(registry.Namespaces()); err != nil {
		return nil, err
	}

	m.logger.Info().
		Strs("packages", m.EnabledPackages()).
		Msg("Session manager initialized")
	return m, nil
}

// SetEnabledPackages validates every requested identifier against the
// registry, builds a brand-new instance from the resolved packages, and
// atomically swaps it in along with a recomputed completion catalog. One
// unknown identifier rejects the whole request and leaves the previous
// instance untouched.
func (m *Manager) SetEnabledPackages(requested []string) error {
	seen := make(map[string]bool, len(requested))
	var packages []capability.Package
	var unknown []string

	for _, namespace := range requested {
		if seen[namespace] {
			continue
		}
		seen[namespace] = true

		pkg, err := m.registry.Resolve(namespace)
		if err != nil {
			unknown = append(unknown, namespace)
			continue
		}
		packages = append(packages, pkg)
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		observability.RecordReconfigure(false)
		m.logger.Warn().Strs("unknown", unknown).Msg("Rejected package reconfigure")
		return &UnknownPackageError{Identifiers: unknown}
	}

	instance, err := engine.New(packages)
	if err != nil {
		observability.RecordReconfigure(false)
		return err
	}
	catalog := buildCatalog(packages)

	m.mu.Lock()
	m.instance = instance
	m.packages = packages
	m.catalog = catalog
	m.mu.Unlock()

	observability.RecordReconfigure(true)
	observability.SetCompletionCatalogSize(len(catalog))
	m.logger.Info().
		Strs("packages", instance.Enabled()).
		Int("catalog_entries", len(catalog)).
		Msg("Capability packages reconfigured")
	return nil
}

// Execute runs one script. REPL requests share the live instance, so declared
// state persists across turns; OneShot requests get an ephemeral instance
// built from the same enabled set. All engine-level failures come back as a
// structured outcome, never as a panic or a dead instance.
func (m *Manager) Execute(req ExecutionRequest) ExecutionResult {
	m.mu.RLock()
	target := m.instance
	packages := m.packages
	m.mu.RUnlock()

	result := ExecutionResult{RequestID: gonanoid.Must(12)}

	if req.Mode == ModeOneShot {
		fresh, err := engine.New(packages)
		if err != nil {
			result.Outcome = OutcomeRuntimeError
			result.ErrorMessage = err.Error()
			return result
		}
		target = fresh
	}

	capture := engine.NewCapture(req.OnOutput)
	start := time.Now()
	value, hasValue, err := target.Eval(req.Script, capture)
	result.Duration = time.Since(start)
	result.Output = capture.Drain()

	switch typed := err.(type) {
	case nil:
		result.Outcome = OutcomeSuccess
		result.Value = value
		result.HasValue = hasValue
	case *engine.ParseError:
		result.Outcome = OutcomeParseError
		result.ErrorMessage = typed.Message
	case *engine.RuntimeError:
		result.Outcome = OutcomeRuntimeError
		result.ErrorMessage = typed.Message
	default:
		result.Outcome = OutcomeRuntimeError
		result.ErrorMessage = err.Error()
	}

	observability.ObserveExecution(string(req.Mode), string(result.Outcome), result.Duration)
	m.logger.Debug().
		Str("request_id", result.RequestID).
		Str("mode", string(req.Mode)).
		Str("outcome", string(result.Outcome)).
		Dur("duration", result.Duration).
		Int("output_lines", len(result.Output)).
		Msg("Script executed")
	return result
}

// CompletionCatalog returns the catalog computed by the most recent
// successful SetEnabledPackages call.
func (m *Manager) CompletionCatalog() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.catalog))
	copy(out, m.catalog)
	return out
}

// EnabledPackages returns the currently mounted namespaces in sorted order.
func (m *Manager) EnabledPackages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instance.Enabled()
}

// Descriptors returns UI-facing rows for every registered package with the
// current selection applied.
func (m *Manager) Descriptors() []capability.Descriptor {
	return m.registry.Descriptors(m.EnabledPackages())
}
