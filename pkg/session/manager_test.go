package session

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmccomb/pastrami/pkg/capability"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(capability.DefaultRegistry())
	require.NoError(t, err)
	return m
}

func TestNewManager(t *testing.T) {
	m := newTestManager(t)

	t.Run("should enable every curated package by default", func(t *testing.T) {
		assert.Equal(t, []string{"fs", "ml", "rand", "sci", "url"}, m.EnabledPackages())
	})

	t.Run("should expose a populated catalog immediately", func(t *testing.T) {
		catalog := m.CompletionCatalog()
		assert.Contains(t, catalog, "let")
		assert.Contains(t, catalog, "rand")
		assert.Contains(t, catalog, "rand::")
		assert.Contains(t, catalog, "rand::rand")
		assert.Contains(t, catalog, "sci::argmin")
	})
}

func TestSetEnabledPackages(t *testing.T) {
	t.Run("should rebuild the catalog with no leftovers from the previous set", func(t *testing.T) {
		m := newTestManager(t)
		require.NoError(t, m.SetEnabledPackages([]string{"rand"}))

		catalog := m.CompletionCatalog()
		assert.Contains(t, catalog, "rand::rand")
		for _, entry := range catalog {
			assert.False(t, strings.HasPrefix(entry, "sci"), "stale entry %q", entry)
			assert.False(t, strings.HasPrefix(entry, "fs"), "stale entry %q", entry)
		}

		pkg, err := capability.DefaultRegistry().Resolve("rand")
		require.NoError(t, err)
		assert.Equal(t, buildCatalog([]capability.Package{pkg}), catalog)
	})

	t.Run("should deduplicate requested identifiers", func(t *testing.T) {
		m := newTestManager(t)
		require.NoError(t, m.SetEnabledPackages([]string{"rand", "rand", "sci"}))
		assert.Equal(t, []string{"rand", "sci"}, m.EnabledPackages())
	})

	t.Run("should reject unknown identifiers without touching state", func(t *testing.T) {
		m := newTestManager(t)
		require.NoError(t, m.SetEnabledPackages([]string{"rand"}))

		err := m.SetEnabledPackages([]string{"rand", "krystal"})
		require.Error(t, err)
		var unknownErr *UnknownPackageError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, []string{"krystal"}, unknownErr.Identifiers)
		assert.True(t, errors.Is(err, capability.ErrUnknownPackage))

		// Previously mounted functions still resolve.
		assert.Equal(t, []string{"rand"}, m.EnabledPackages())
		result := m.Execute(ExecutionRequest{Script: "rand::rand(0, 5)", Mode: ModeREPL})
		assert.Equal(t, OutcomeSuccess, result.Outcome)
	})

	t.Run("should produce an identical catalog when applied twice", func(t *testing.T) {
		m := newTestManager(t)
		require.NoError(t, m.SetEnabledPackages([]string{"ml", "url"}))
		first := m.CompletionCatalog()
		require.NoError(t, m.SetEnabledPackages([]string{"url", "ml"}))
		assert.Equal(t, first, m.CompletionCatalog())
	})

	t.Run("should reset REPL state on reconfigure", func(t *testing.T) {
		m := newTestManager(t)
		result := m.Execute(ExecutionRequest{Script: "var sticky = 9;", Mode: ModeREPL})
		require.Equal(t, OutcomeSuccess, result.Outcome)

		require.NoError(t, m.SetEnabledPackages(m.EnabledPackages()))

		result = m.Execute(ExecutionRequest{Script: "sticky", Mode: ModeREPL})
		assert.Equal(t, OutcomeRuntimeError, result.Outcome)
	})
}

func TestExecute(t *testing.T) {
	m := newTestManager(t)

	t.Run("should return prints in order followed by the final value", func(t *testing.T) {
		result := m.Execute(ExecutionRequest{
			Script: `print("one"); print("two"); print("three"); 40 + 2`,
			Mode:   ModeOneShot,
		})
		assert.Equal(t, OutcomeSuccess, result.Outcome)
		assert.Equal(t, []string{"one", "two", "three"}, result.Output)
		assert.True(t, result.HasValue)
		assert.Equal(t, "42", result.Value)
	})

	t.Run("should classify syntax failures as parse errors with no output", func(t *testing.T) {
		result := m.Execute(ExecutionRequest{Script: "let x = ;", Mode: ModeOneShot})
		assert.Equal(t, OutcomeParseError, result.Outcome)
		assert.Empty(t, result.Output)
		assert.False(t, result.HasValue)
		assert.NotEmpty(t, result.ErrorMessage)
	})

	t.Run("should preserve output emitted before a runtime failure", func(t *testing.T) {
		result := m.Execute(ExecutionRequest{
			Script: `print("before the fall"); boom();`,
			Mode:   ModeOneShot,
		})
		assert.Equal(t, OutcomeRuntimeError, result.Outcome)
		assert.Equal(t, []string{"before the fall"}, result.Output)
		assert.NotEmpty(t, result.ErrorMessage)
	})

	t.Run("should keep rand values inside the requested bounds", func(t *testing.T) {
		result := m.Execute(ExecutionRequest{Script: "rand::rand(0, 10)", Mode: ModeOneShot})
		require.Equal(t, OutcomeSuccess, result.Outcome)
		assert.Empty(t, result.Output)
		n, err := strconv.Atoi(result.Value)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, 10)
	})

	t.Run("should persist REPL state across turns", func(t *testing.T) {
		first := m.Execute(ExecutionRequest{Script: "var carried = 41;", Mode: ModeREPL})
		require.Equal(t, OutcomeSuccess, first.Outcome)

		second := m.Execute(ExecutionRequest{Script: "carried + 1", Mode: ModeREPL})
		assert.Equal(t, OutcomeSuccess, second.Outcome)
		assert.Equal(t, "42", second.Value)
	})

	t.Run("should not leak one-shot state into later runs", func(t *testing.T) {
		first := m.Execute(ExecutionRequest{Script: "var fleeting = 1;", Mode: ModeOneShot})
		require.Equal(t, OutcomeSuccess, first.Outcome)

		second := m.Execute(ExecutionRequest{Script: "fleeting", Mode: ModeOneShot})
		assert.Equal(t, OutcomeRuntimeError, second.Outcome)
	})

	t.Run("should stream output through the observer before returning", func(t *testing.T) {
		var streamed []string
		result := m.Execute(ExecutionRequest{
			Script: `print("a"); print("b"); 0`,
			Mode:   ModeOneShot,
			OnOutput: func(line string) {
				streamed = append(streamed, line)
			},
		})
		assert.Equal(t, OutcomeSuccess, result.Outcome)
		assert.Equal(t, []string{"a", "b"}, streamed)
	})

	t.Run("should assign a request id and duration", func(t *testing.T) {
		result := m.Execute(ExecutionRequest{Script: "1", Mode: ModeOneShot})
		assert.NotEmpty(t, result.RequestID)
		assert.Greater(t, result.Duration, time.Duration(0))
	})
}

func TestExecute_InFlightSurvivesReconfigure(t *testing.T) {
	m := newTestManager(t)

	started := make(chan struct{})
	done := make(chan ExecutionResult, 1)
	var once bool

	go func() {
		done <- m.Execute(ExecutionRequest{
			// Busy-work after the first print so the reconfigure lands while
			// the script is still running, then touch a mounted namespace.
			Script: `print("started"); var s = 0; for (var i = 0; i < 2000000; i++) { s += i; } rand::rand(0, 1)`,
			Mode:   ModeREPL,
			OnOutput: func(string) {
				if !once {
					once = true
					close(started)
				}
			},
		})
	}()

	<-started
	require.NoError(t, m.SetEnabledPackages([]string{"sci"}))

	result := <-done
	assert.Equal(t, OutcomeSuccess, result.Outcome, "in-flight execution must complete against the instance it started with: %s", result.ErrorMessage)

	// New executions see the reconfigured instance.
	after := m.Execute(ExecutionRequest{Script: "rand::rand(0, 1)", Mode: ModeREPL})
	assert.Equal(t, OutcomeRuntimeError, after.Outcome)
}

func TestBuildCatalog(t *testing.T) {
	reg := capability.DefaultRegistry()
	catalog := buildCatalog(reg.List())

	t.Run("should be sorted and deduplicated", func(t *testing.T) {
		assert.True(t, sort.StringsAreSorted(catalog))
		seen := make(map[string]bool, len(catalog))
		for _, entry := range catalog {
			assert.False(t, seen[entry], "duplicate entry %q", entry)
			seen[entry] = true
		}
	})

	t.Run("should contain namespaces, separators and qualified functions", func(t *testing.T) {
		for _, pkg := range reg.List() {
			assert.Contains(t, catalog, pkg.Namespace)
			assert.Contains(t, catalog, pkg.Namespace+capability.ScopeSeparator)
			for _, fn := range pkg.Functions() {
				assert.Contains(t, catalog, pkg.Namespace+capability.ScopeSeparator+fn)
			}
		}
	})

	t.Run("should always contain the base keywords", func(t *testing.T) {
		empty := buildCatalog(nil)
		assert.Contains(t, empty, "function")
		assert.Contains(t, empty, "while")
		assert.NotContains(t, empty, "rand")
	})
}
