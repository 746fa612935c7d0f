package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("should list packages in declaration order", func(t *testing.T) {
		assert.Equal(t, []string{"rand", "fs", "url", "ml", "sci"}, reg.Namespaces())
	})

	t.Run("should expose a non-empty function table per package", func(t *testing.T) {
		for _, pkg := range reg.List() {
			assert.NotEmpty(t, pkg.Functions(), "package %s has no functions", pkg.Namespace)
			assert.NotEmpty(t, pkg.Description)
			assert.NotEmpty(t, pkg.Repository)
		}
	})

	t.Run("should resolve known namespaces", func(t *testing.T) {
		pkg, err := reg.Resolve("rand")
		require.NoError(t, err)
		assert.Equal(t, "rand", pkg.Namespace)
		assert.Contains(t, pkg.Functions(), "rand")
	})

	t.Run("should report unknown namespaces", func(t *testing.T) {
		_, err := reg.Resolve("nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownPackage))
		assert.Contains(t, err.Error(), "nope")
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("should reject duplicate namespaces", func(t *testing.T) {
		_, err := NewRegistry(RandPackage(), RandPackage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("should reject empty namespaces", func(t *testing.T) {
		_, err := NewRegistry(Package{})
		require.Error(t, err)
	})
}

func TestDescriptors(t *testing.T) {
	reg := DefaultRegistry()
	descriptors := reg.Descriptors([]string{"rand", "sci"})

	require.Len(t, descriptors, 5)
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}

	assert.True(t, byName["rand"].Selected)
	assert.True(t, byName["sci"].Selected)
	assert.False(t, byName["fs"].Selected)
	assert.False(t, byName["url"].Selected)
	assert.False(t, byName["ml"].Selected)
}
